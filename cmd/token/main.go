// Package main prints a signed bearer token for local testing.
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"time"

	"posreport/internal/config"
	"posreport/internal/models"
	"posreport/internal/utils"
)

func main() {
	role := flag.String("role", models.RoleStoreAdmin, "store_admin, branch_manager or cashier")
	userID := flag.Uint("user", 1, "user id")
	storeID := flag.Uint("store", 1, "store id")
	branch := flag.Int64("branch", 0, "branch id for branch managers")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	claims := models.UserClaims{
		UserID:      *userID,
		StoreID:     *storeID,
		Role:        *role,
		Permissions: models.GetDefaultPermissions(*role),
	}
	if *branch > 0 {
		claims.BranchID = branch
	}

	token, err := utils.GenerateToken(claims, cfg.JWTSecret, time.Now(), *ttl)
	if err != nil {
		stdlog.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
