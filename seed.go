package main

import (
	"log"

	"hostel-complaint-server/database"
	"hostel-complaint-server/models"
	"hostel-complaint-server/utils"
)

// SeedDemoData populates empty registry tables with a small working set:
// one occupant, one staff member per tier, and a few wifi credentials.
// Intended for local development; controlled by SEED_DEMO_DATA.
func SeedDemoData() {
	seedUsers()
	seedWifiCredentials()
}

func seedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	users := []models.User{
		{
			Address:  "0x90f8bf6a479f320ead074411a4b0e7944ea8c9c1",
			Email:    "occupant@hostel.local",
			FullName: "Demo Occupant",
			Role:     models.RoleOccupant,
		},
		{
			Address:  "0xffcf8fdee72ac11b5c542428b35eef5769c409f0",
			Email:    "warden@hostel.local",
			FullName: "Block Warden",
			Role:     models.RoleLowerAdmin,
		},
		{
			Address:  "0x22d491bde2303f2f43325b2108d26f1eaba1e32b",
			Email:    "chief-warden@hostel.local",
			FullName: "Chief Warden",
			Role:     models.RoleHigherAdmin,
		},
	}

	for i := range users {
		users[i].Address = utils.NormalizeAddress(users[i].Address)
		users[i].IsActive = true
		if err := database.DB.Create(&users[i]).Error; err != nil {
			log.Printf("⚠️ Failed to seed user %s: %v", users[i].Email, err)
		}
	}
	log.Printf("🌱 Seeded %d demo users", len(users))
}

func seedWifiCredentials() {
	var count int64
	database.DB.Model(&models.WifiCredential{}).Count(&count)
	if count > 0 {
		return
	}

	entries := []struct {
		email    string
		wifiName string
		password string
	}{
		{"occupant@hostel.local", "HostelWiFi-A", "ChangeMe1"},
		{"warden@hostel.local", "HostelWiFi-Staff", "ChangeMe2"},
	}

	for _, entry := range entries {
		hash, err := utils.HashPassword(entry.password)
		if err != nil {
			log.Printf("⚠️ Failed to hash wifi password for %s: %v", entry.email, err)
			continue
		}
		credential := models.WifiCredential{
			Email:        entry.email,
			WifiName:     entry.wifiName,
			PasswordHash: hash,
		}
		if err := database.DB.Create(&credential).Error; err != nil {
			log.Printf("⚠️ Failed to seed wifi credential for %s: %v", entry.email, err)
		}
	}
	log.Printf("🌱 Seeded %d wifi credentials", len(entries))
}
