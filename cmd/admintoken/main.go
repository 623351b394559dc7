// Command admintoken prints a signed operator token for the /api/admin routes.
//
//	ADMIN_JWT_SECRET=... admintoken -sub ops -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/pkg/logger"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	log := logger.Init(logger.Options{Level: "info", Pretty: true, Output: os.Stderr})

	token, err := middleware.IssueAdminToken(os.Getenv("ADMIN_JWT_SECRET"), *subject, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to issue admin token")
	}
	fmt.Println(token)
}
