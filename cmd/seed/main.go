package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"barberq/internal/database"
	"barberq/internal/domain"
	"barberq/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("barberq.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// cleanup old data (safe order)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM stations")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM barbers")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	barbers := repository.NewBarberRepository(db)
	services := repository.NewServiceRepository(db)
	appointments := repository.NewAppointmentRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@barberq.app",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Shop Admin",
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@barberq.app / admin123")

	customers := []domain.User{}
	customerNames := []string{"James Carter", "Mia Torres", "Noah Reed"}
	for i, name := range customerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("customer%d@mail.com", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			Name:         name,
			Phone:        fmt.Sprintf("+1 555 010 00%02d", i+1),
		}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatal(err)
		}
		customers = append(customers, u)
	}

	// ================== BARBERS ==================
	log.Println("Creating barbers...")

	weekly, _ := json.Marshal(map[string]map[string]string{
		"monday":    {"open": "09:00", "close": "19:00"},
		"tuesday":   {"open": "09:00", "close": "19:00"},
		"wednesday": {"open": "09:00", "close": "19:00"},
		"thursday":  {"open": "09:00", "close": "19:00"},
		"friday":    {"open": "09:00", "close": "20:00"},
		"saturday":  {"open": "10:00", "close": "18:00"},
	})

	barberNames := []string{"Marcus Cole", "Leo Ramirez"}
	barberList := []domain.Barber{}
	for i, name := range barberNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("barber123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("barber%d@barberq.app", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleBarber,
			Name:         name,
		}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatal(err)
		}

		b := domain.Barber{
			UserID:    u.ID,
			Name:      name,
			Specialty: "Fades & beard trims",
			Schedule:  weekly,
			Active:    true,
		}
		if err := barbers.Create(ctx, &b); err != nil {
			log.Fatal(err)
		}
		barberList = append(barberList, b)
	}

	// ================== SERVICES ==================
	log.Println("Creating service menu...")

	menu := []domain.CatalogService{
		{Name: "Haircut", Price: 25, Duration: 30, Active: true},
		{Name: "Beard Trim", Price: 15, Duration: 15, Active: true},
		{Name: "Haircut + Beard", Price: 35, Duration: 45, Active: true},
		{Name: "Kids Cut", Price: 18, Duration: 25, Active: true},
	}
	for i := range menu {
		if err := services.Create(ctx, &menu[i]); err != nil {
			log.Fatal(err)
		}
	}

	// ================== APPOINTMENTS ==================
	log.Println("Creating today's appointments...")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	times := []string{"9:00 AM", "10:30 AM", "2:00 PM"}
	for i, label := range times {
		c := customers[i%len(customers)]
		a := domain.Appointment{
			Code:          fmt.Sprintf("seed-%d", i+1),
			BarberID:      barberList[0].ID,
			CustomerID:    &c.ID,
			CustomerName:  c.Name,
			Services:      []domain.ServiceLine{{Name: "Haircut", Price: 25, Duration: 30}},
			Date:          today,
			TimeLabel:     label,
			Status:        domain.AppointmentConfirmed,
			TotalPrice:    25,
			TotalDuration: 30,
		}
		if err := appointments.Create(ctx, &a); err != nil {
			log.Fatal(err)
		}
		log.Printf("Appointment #%d at %s for %s", a.AppointmentNumber, label, c.Name)
	}

	log.Println("Seed complete")
}
