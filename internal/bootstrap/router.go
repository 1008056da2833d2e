package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	httpapi "github.com/jamie33k/EmergencySystemFinal-draft/internal/api/http"
	apimw "github.com/jamie33k/EmergencySystemFinal-draft/internal/api/middleware"
	authhttp "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/http"
	authservice "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/service"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/token"
	emhttp "github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/http"
	emservice "github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/service"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/events"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/geocode"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Environment string
	Auth        *authservice.AuthService
	Dispatch    *emservice.DispatchService
	Tokens      *token.Manager
	Bus         events.Bus
	Geocoder    *geocode.Client
	DB          *pgxpool.Pool
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(apimw.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	authHandler := authhttp.NewHandler(dep.Auth)
	authHandler.Register(r, dep.Tokens)

	emHandler := emhttp.NewHandler(dep.Dispatch, dep.Bus, dep.Geocoder)
	emHandler.Register(r, dep.Tokens)

	return r
}
