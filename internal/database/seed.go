// internal/database/seed.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecocupon/ecocanasta-api/internal/config"
	"github.com/ecocupon/ecocanasta-api/internal/models"
)

// BootstrapAdmin creates the configured admin account on a fresh database so
// the admin-gated endpoints (including sample-data seeding) are reachable.
// Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD; config.Validate rejects
// the default password in production.
func BootstrapAdmin(db *gorm.DB, admin config.AdminConfig) error {
	var adminCount int64
	db.Model(&models.Profile{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount > 0 {
		return nil
	}

	user := &models.User{
		Email:    admin.Email,
		Provider: models.AuthProviderLocal,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(admin.Password); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	return WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		profile := &models.Profile{
			ID:          user.ID,
			DisplayName: "Administrador",
			Role:        models.RoleAdmin,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}
		logrus.Info("Default admin user created")
		return nil
	})
}

// SeedSampleData bulk-upserts the fixed sample catalog: categories, products,
// specs and comparison prices. Safe to call repeatedly.
func SeedSampleData(db *gorm.DB) error {
	categories := []models.Category{
		{ID: "electronics", Name: "Electrónicos", Slug: "electronics", Description: "Dispositivos electrónicos y gadgets", Image: "/placeholder.svg?height=400&width=600"},
		{ID: "home", Name: "Hogar", Slug: "home", Description: "Productos para el hogar y decoración", Image: "/placeholder.svg?height=400&width=600"},
		{ID: "fashion", Name: "Moda", Slug: "fashion", Description: "Ropa, calzado y accesorios", Image: "/placeholder.svg?height=400&width=600"},
		{ID: "sports", Name: "Deportes", Slug: "sports", Description: "Equipamiento deportivo y accesorios", Image: "/placeholder.svg?height=400&width=600"},
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := []models.Product{
		{ID: "smartphone-1", Name: "Smartphone Galaxy S23", Description: "Smartphone de última generación con cámara de alta resolución y batería de larga duración.", Price: 699990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "electronics"},
		{ID: "laptop-1", Name: "Laptop UltraBook Pro", Description: "Laptop ultradelgada con procesador de alto rendimiento y pantalla de alta resolución.", Price: 1299990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "electronics"},
		{ID: "headphones-1", Name: "Audífonos Noise Cancelling", Description: "Audífonos inalámbricos con cancelación de ruido activa y sonido de alta fidelidad.", Price: 249990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "electronics"},
		{ID: "sofa-1", Name: "Sofá Modular Comfort", Description: "Sofá modular de 3 cuerpos con tela de alta calidad y diseño contemporáneo.", Price: 899990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "home"},
		{ID: "table-1", Name: "Mesa de Centro Nórdica", Description: "Mesa de centro con diseño nórdico, fabricada en madera de roble y patas de metal.", Price: 199990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "home"},
		{ID: "lamp-1", Name: "Lámpara de Pie Moderna", Description: "Lámpara de pie con diseño moderno, perfecta para iluminar cualquier espacio de tu hogar.", Price: 89990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "home"},
		{ID: "jacket-1", Name: "Chaqueta Impermeable Mountain", Description: "Chaqueta impermeable para actividades al aire libre con tecnología de protección contra el viento y la lluvia.", Price: 149990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "fashion"},
		{ID: "sneakers-1", Name: "Zapatillas Running Pro", Description: "Zapatillas de running con amortiguación avanzada y diseño ligero para máximo rendimiento.", Price: 119990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "fashion"},
		{ID: "backpack-1", Name: "Mochila Urbana Tech", Description: "Mochila urbana con compartimentos para laptop y dispositivos electrónicos, resistente al agua.", Price: 79990, Image: "/placeholder.svg?height=400&width=400", CategoryID: "fashion"},
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	specs := []models.ProductSpec{
		{ProductID: "smartphone-1", Name: "Pantalla", Value: "6.1 pulgadas AMOLED"},
		{ProductID: "smartphone-1", Name: "Procesador", Value: "Snapdragon 8 Gen 2"},
		{ProductID: "smartphone-1", Name: "RAM", Value: "8GB"},
		{ProductID: "smartphone-1", Name: "Almacenamiento", Value: "256GB"},
		{ProductID: "smartphone-1", Name: "Cámara", Value: "50MP + 12MP + 10MP"},
		{ProductID: "smartphone-1", Name: "Batería", Value: "3900mAh"},

		{ProductID: "laptop-1", Name: "Pantalla", Value: "15.6 pulgadas 4K"},
		{ProductID: "laptop-1", Name: "Procesador", Value: "Intel Core i7-12700H"},
		{ProductID: "laptop-1", Name: "RAM", Value: "16GB"},
		{ProductID: "laptop-1", Name: "Almacenamiento", Value: "1TB SSD"},
		{ProductID: "laptop-1", Name: "Gráficos", Value: "NVIDIA RTX 3060"},
		{ProductID: "laptop-1", Name: "Batería", Value: "10 horas"},

		{ProductID: "headphones-1", Name: "Tipo", Value: "Over-ear"},
		{ProductID: "headphones-1", Name: "Conectividad", Value: "Bluetooth 5.2"},
		{ProductID: "headphones-1", Name: "Cancelación de ruido", Value: "Activa"},
		{ProductID: "headphones-1", Name: "Batería", Value: "30 horas"},
		{ProductID: "headphones-1", Name: "Carga rápida", Value: "Sí"},
		{ProductID: "headphones-1", Name: "Micrófono", Value: "Integrado"},
	}

	for _, spec := range specs {
		var count int64
		db.Model(&models.ProductSpec{}).Where("product_id = ? AND name = ?", spec.ProductID, spec.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&spec).Error; err != nil {
			return fmt.Errorf("failed to seed product specs: %w", err)
		}
	}

	now := time.Now()
	knastaPrices := []models.KnastaPrice{
		{ProductID: "smartphone-1", Price: 599990, URL: "https://knasta.cl/producto/smartphone-galaxy-s23", LastUpdated: now},
		{ProductID: "laptop-1", Price: 1199990, URL: "https://knasta.cl/producto/laptop-ultrabook-pro", LastUpdated: now},
		{ProductID: "headphones-1", Price: 199990, URL: "https://knasta.cl/producto/audifonos-noise-cancelling", LastUpdated: now},
		{ProductID: "sofa-1", Price: 949990, URL: "https://knasta.cl/producto/sofa-modular-comfort", LastUpdated: now},
		{ProductID: "table-1", Price: 159990, URL: "https://knasta.cl/producto/mesa-centro-nordica", LastUpdated: now},
		{ProductID: "lamp-1", Price: 79990, URL: "https://knasta.cl/producto/lampara-pie-moderna", LastUpdated: now},
		{ProductID: "jacket-1", Price: 129990, URL: "https://knasta.cl/producto/chaqueta-impermeable-mountain", LastUpdated: now},
		{ProductID: "sneakers-1", Price: 99990, URL: "https://knasta.cl/producto/zapatillas-running-pro", LastUpdated: now},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		UpdateAll: true,
	}).Create(&knastaPrices).Error
	if err != nil {
		return fmt.Errorf("failed to seed knasta prices: %w", err)
	}

	logrus.Info("Sample data seeded")
	return nil
}
