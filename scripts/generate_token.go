package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/middleware"
)

// Command generate_token signs a backoffice access token with JWT_SECRET_KEY.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	adminID := flag.String("admin", "", "Admin ID for the token (random when empty)")
	email := flag.String("email", "", "Admin email")
	roles := flag.String("roles", string(domain.RoleEditor), "Comma-separated list of roles")
	tenantID := flag.String("tenant", "", "Tenant ID, empty for a super admin")
	expirationHours := flag.Int("exp", 0, "Token expiration in hours (defaults to JWT_EXPIRATION_HOURS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}
	if *expirationHours > 0 {
		cfg.JWTExpirationHours = *expirationHours
	}

	rolesList := []string{}
	for _, role := range strings.Split(*roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			rolesList = append(rolesList, role)
		}
	}
	if *tenantID == "" && !domain.HasRole(rolesList, domain.RoleSuperAdmin) {
		log.Fatal("Tokens without a tenant need the super_admin role")
	}

	if *adminID == "" {
		*adminID = uuid.New().String()
	}

	tokenString, err := middleware.NewAuthMiddleware(cfg).GenerateToken(&domain.Admin{
		ID:        *adminID,
		TenantID:  *tenantID,
		Email:     *email,
		Roles:     rolesList,
		Confirmed: true,
	})
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", tokenString)
}
