package main

import (
	"fmt"

	"github.com/anta-store/anta-api/internal/config"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "أحذية الجري",
				"en": "Running Shoes",
			}),
			Slug:      "running-shoes",
			Icon:      "sneaker",
			SortOrder: 300,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "ملابس رياضية",
				"en": "Sportswear",
			}),
			Slug:      "sportswear",
			Icon:      "shirt",
			SortOrder: 200,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "إكسسوارات",
				"en": "Accessories",
			}),
			Slug:      "accessories",
			Icon:      "bag",
			SortOrder: 100,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"running-shoes", "sportswear", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	shoesID := categoryIDs["running-shoes"]
	sportswearID := categoryIDs["sportswear"]
	accessoriesID := categoryIDs["accessories"]

	products := []models.Product{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "حذاء جري سي 202",
				"en": "C202 Running Shoe",
			}),
			Slug: "c202-running-shoe",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "حذاء جري خفيف الوزن بنعل ممتص للصدمات، مناسب للمسافات الطويلة.",
				"en": "Lightweight running shoe with a shock-absorbing midsole, built for long distances.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(64.50)),
			CategoryID:  shoesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800",
			}),
			Tags:      models.StringArray([]string{"running", "cushioned", "men"}),
			Stock:     40,
			IsActive:  true,
			SortOrder: 400,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "حذاء مشي يومي",
				"en": "Everyday Walking Shoe",
			}),
			Slug: "everyday-walking-shoe",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "تصميم مريح للاستخدام اليومي مع خامة شبكية جيدة التهوية.",
				"en": "Comfort-first design for daily wear with a breathable mesh upper.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(48.00)),
			CategoryID:  shoesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1460353581641-37baddab0fa2?w=800",
			}),
			Tags:      models.StringArray([]string{"walking", "casual"}),
			Stock:     25,
			IsActive:  true,
			SortOrder: 380,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "قميص تدريب سريع الجفاف",
				"en": "Quick-Dry Training Tee",
			}),
			Slug: "quick-dry-training-tee",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "قماش يمتص العرق ويجف بسرعة، مثالي لتمارين الصيف في عمّان.",
				"en": "Moisture-wicking fabric that dries fast, ideal for summer workouts.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.75)),
			CategoryID:  sportswearID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800",
			}),
			Tags:      models.StringArray([]string{"training", "summer"}),
			Stock:     60,
			IsActive:  true,
			SortOrder: 300,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "جاكيت رياضي شتوي",
				"en": "Winter Track Jacket",
			}),
			Slug: "winter-track-jacket",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "جاكيت مبطن مقاوم للرياح لتمارين الهواء الطلق في الشتاء.",
				"en": "Insulated wind-resistant jacket for outdoor winter sessions.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(39.90)),
			CategoryID:  sportswearID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1551028719-00167b16eac5?w=800",
			}),
			Tags:      models.StringArray([]string{"winter", "outdoor"}),
			Stock:     15,
			IsActive:  true,
			SortOrder: 280,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "حقيبة رياضية متوسطة",
				"en": "Medium Gym Duffel",
			}),
			Slug: "medium-gym-duffel",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "حقيبة متينة بجيب منفصل للأحذية وحزام كتف قابل للتعديل.",
				"en": "Durable duffel with a separate shoe pocket and adjustable strap.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(22.00)),
			CategoryID:  accessoriesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800",
			}),
			Tags:      models.StringArray([]string{"bag", "gym"}),
			Stock:     30,
			IsActive:  true,
			SortOrder: 200,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "زجاجة ماء رياضية",
				"en": "Sports Water Bottle",
			}),
			Slug: "sports-water-bottle",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "سعة لتر واحد، خالية من البيسفينول، بغطاء محكم.",
				"en": "One liter, BPA-free, with a leak-proof cap.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			CategoryID:  accessoriesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=800",
			}),
			Tags:      models.StringArray([]string{"hydration", "gym"}),
			Stock:     120,
			IsActive:  true,
			SortOrder: 180,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "جوارب جري (٣ أزواج)",
				"en": "Running Socks (3-Pack)",
			}),
			Slug: "running-socks-3-pack",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "جوارب مبطنة عند الكعب ومقدمة القدم، تباع بعبوة من ثلاثة أزواج.",
				"en": "Cushioned at the heel and toe, sold as a pack of three pairs.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.25)),
			CategoryID:  accessoriesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1586350977771-b3b0abd50c82?w=800",
			}),
			Tags:      models.StringArray([]string{"socks", "running"}),
			Stock:     3,
			IsActive:  true,
			SortOrder: 160,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"ar": "حذاء كرة سلة (نفدت الكمية)",
				"en": "Basketball Shoe (Sold Out)",
			}),
			Slug: "basketball-shoe-sold-out",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"ar": "نموذج لعرض حالة نفاد المخزون في الواجهة.",
				"en": "Demonstrates the out-of-stock state on the storefront.",
			}),
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(72.00)),
			CategoryID:  shoesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1515955656352-a1fa3ffcd111?w=800",
			}),
			Tags:      models.StringArray([]string{"basketball"}),
			Stock:     0,
			IsActive:  true,
			SortOrder: 140,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			existing.NameJSON = prod.NameJSON
			existing.DescriptionJSON = prod.DescriptionJSON
			existing.PriceAmount = prod.PriceAmount
			existing.CategoryID = prod.CategoryID
			existing.Images = prod.Images
			existing.Tags = prod.Tags
			existing.Stock = prod.Stock
			existing.IsActive = prod.IsActive
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Slug)
			}
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 8 Products (including low-stock and sold-out demos)")
}
