package configs

import (
	"errors"
	"strings"

	"brewpair/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedAdmin creates the first admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		log.Warning("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Infof("admin already exists: %s", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

const DemoShopSlug = "gloria-jeans-p88f"

type demoCoffee struct {
	name, roast, origin, description, image, price string
	notes                                          []string
}

type demoPastry struct {
	name, notes, flavor, image, price string
}

type demoPairing struct {
	coffee, pastry string
	score          int
	reasoning      string
}

var demoCoffees = []demoCoffee{
	{"Espresso", "Dark", "Colombia", "A rich and intense espresso with notes of dark chocolate and caramel.",
		"https://images.unsplash.com/photo-1510591509098-f4fdc6d0ff04?w=400", "4.50", []string{"bold", "chocolate", "caramel"}},
	{"Cappuccino", "Medium", "Ethiopia", "A classic cappuccino with a perfect balance of espresso and steamed milk.",
		"https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=400", "5.00", []string{"smooth", "creamy", "nutty"}},
	{"Latte", "Medium", "Brazil", "A smooth and creamy latte with hints of vanilla and hazelnut.",
		"https://images.unsplash.com/photo-1461023058943-07fcbe16d735?w=400", "5.50", []string{"sweet", "vanilla", "hazelnut"}},
	{"Americano", "Light", "Costa Rica", "A smooth Americano with bright citrus notes and a floral finish.",
		"https://images.unsplash.com/photo-1517487881594-2787fef5ebf7?w=400", "4.00", []string{"bright", "citrus", "floral"}},
}

var demoPastries = []demoPastry{
	{"Chocolate Croissant", "Buttery and flaky with rich chocolate filling", "sweet, buttery, chocolatey",
		"https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400", "3.50"},
	{"Blueberry Muffin", "Fresh blueberries in a tender, moist muffin", "sweet, fruity, tender",
		"https://images.unsplash.com/photo-1607958996333-41aef7caefaa?w=400", "3.00"},
	{"Almond Biscotti", "Crisp Italian cookies perfect for dipping", "nutty, crunchy, slightly sweet",
		"https://images.unsplash.com/photo-1599599810769-bcde5a160d32?w=400", "2.50"},
	{"Cinnamon Roll", "Warm, gooey cinnamon roll with cream cheese frosting", "sweet, spicy, rich",
		"https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400", "4.00"},
}

var demoPairings = []demoPairing{
	{"Espresso", "Chocolate Croissant", 95, "The bold intensity of espresso perfectly complements the rich chocolate flavor of the croissant."},
	{"Espresso", "Almond Biscotti", 90, "Classic Italian pairing - the nutty biscotti enhances the espresso's bold character."},
	{"Cappuccino", "Blueberry Muffin", 88, "The creamy cappuccino balances beautifully with the fruity sweetness of the blueberry muffin."},
	{"Cappuccino", "Cinnamon Roll", 85, "Warm spices in the cinnamon roll complement the smooth, creamy cappuccino."},
	{"Latte", "Chocolate Croissant", 92, "The sweet, creamy latte pairs wonderfully with the buttery chocolate croissant."},
	{"Latte", "Cinnamon Roll", 90, "A perfect match - the vanilla notes in the latte enhance the cinnamon roll's sweetness."},
	{"Americano", "Blueberry Muffin", 87, "The bright, citrusy Americano cuts through the sweetness of the blueberry muffin."},
	{"Americano", "Almond Biscotti", 82, "Light and bright Americano pairs well with the nutty, crunchy biscotti."},
}

// SeedDemo loads the Gloria Jeans sample menu. It is a no-op when the shop exists.
func SeedDemo(db *gorm.DB) (*entity.Shop, error) {
	var existing entity.Shop
	err := db.Where("slug = ?", DemoShopSlug).First(&existing).Error
	if err == nil {
		log.Infof("sample shop already exists: %s", existing.Name)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shop := entity.Shop{
		Name:     "Gloria Jeans",
		Slug:     DemoShopSlug,
		QRCode:   DemoShopSlug,
		Settings: datatypes.JSONMap{"description": "Specialty coffee and fresh pastries."},
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&shop).Error; err != nil {
			return err
		}

		coffees := map[string]string{}
		for _, c := range demoCoffees {
			row := entity.Coffee{
				ShopID:       shop.ID,
				Name:         c.name,
				Roast:        c.roast,
				Origin:       c.origin,
				TastingNotes: datatypes.NewJSONSlice(c.notes),
				Description:  c.description,
				Image:        c.image,
				Price:        decimal.NewNullDecimal(decimal.RequireFromString(c.price)),
				Active:       true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			coffees[c.name] = row.ID
		}

		pastries := map[string]string{}
		for _, p := range demoPastries {
			row := entity.Pastry{
				ShopID:        shop.ID,
				Name:          p.name,
				Notes:         p.notes,
				FlavorProfile: p.flavor,
				Image:         p.image,
				Price:         decimal.NewNullDecimal(decimal.RequireFromString(p.price)),
				Active:        true,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			pastries[p.name] = row.ID
		}

		for _, p := range demoPairings {
			row := entity.PairingRule{
				ShopID:     shop.ID,
				CoffeeID:   coffees[p.coffee],
				PastryID:   pastries[p.pastry],
				MatchScore: p.score,
				Reasoning:  p.reasoning,
				Active:     true,
			}
			if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("sample shop created: %s (%d coffees, %d pastries, %d pairings)",
		shop.Name, len(demoCoffees), len(demoPastries), len(demoPairings))
	return &shop, nil
}
