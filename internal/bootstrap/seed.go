package bootstrap

import (
	"context"
	"errors"
	"log"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	authservice "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/service"
)

// SeedDemoUsers creates the demo accounts the dashboards are documented
// with. Existing accounts are left alone, so seeding is safe to run on
// every start.
func SeedDemoUsers(ctx context.Context, auth *authservice.AuthService) {
	demo := []domain.CreateUserRequest{
		{Username: "PeterNjiru", Email: "peter@example.com", Password: "PeterNjiru", Role: domain.RoleClient, Phone: "+254700000001"},
		{Username: "SashaMunene", Email: "sasha@example.com", Password: "SashaMunene", Role: domain.RoleResponder, Phone: "+254700000002"},
		{Username: "Admin", Email: "kipronojamie@gmail.com", Password: "Admin", Role: domain.RoleAdmin, Phone: "+254798578853"},
	}

	for _, req := range demo {
		if _, err := auth.CreateUser(ctx, &req); err != nil {
			if errors.Is(err, domain.ErrDuplicateUser) {
				continue
			}
			log.Printf("seed %s: %v", req.Username, err)
		}
	}
}
