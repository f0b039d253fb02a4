package storage

import (
	"context"
	"fmt"

	"github.com/nikbrunner/mev/internal/model"
)

// Demo account created by Seed.
const (
	SeedUsername = "mev"
	SeedEmail    = "mev@example.com"
	SeedPassword = "mev1234"
)

type seedMenu struct {
	name   string
	scores map[string]string
}

var seedRestaurants = []struct {
	restaurant model.Restaurant
	menus      []seedMenu
}{
	{
		restaurant: model.Restaurant{RestaurantID: "r-hanok", Name: "한옥집", Address: "서울 종로구"},
		menus: []seedMenu{
			{"김치찌개", map[string]string{"flavor": "2", "spiciness": "3", "portion": "3", "price": "1"}},
			{"된장찌개", map[string]string{"flavor": "3", "spiciness": "1", "portion": "2", "price": "1"}},
			{"비빔밥", map[string]string{"flavor": "5", "spiciness": "2", "portion": "2", "price": "2"}},
			{"냉면", map[string]string{"flavor": "4", "spiciness": "1", "portion": "2", "price": "2"}},
		},
	},
	{
		restaurant: model.Restaurant{RestaurantID: "r-katsu", Name: "카츠하우스", Address: "서울 마포구"},
		menus: []seedMenu{
			{"돈까스", map[string]string{"flavor": "3", "spiciness": "1", "portion": "3", "price": "2"}},
			{"치즈 돈까스", map[string]string{"flavor": "3", "spiciness": "1", "portion": "3", "price": "3"}},
			{"라멘", map[string]string{"flavor": "2", "spiciness": "2", "portion": "2", "price": "2"}},
		},
	},
	{
		restaurant: model.Restaurant{RestaurantID: "r-napoli", Name: "나폴리 피자", Address: "서울 용산구"},
		menus: []seedMenu{
			{"마르게리타 피자", map[string]string{"flavor": "4", "spiciness": "1", "portion": "2", "price": "3"}},
			{"페퍼로니 피자", map[string]string{"flavor": "2", "spiciness": "2", "portion": "2", "price": "3"}},
			{"고르곤졸라 피자", map[string]string{"flavor": "1", "spiciness": "1", "portion": "1", "price": "3"}},
		},
	},
	{
		restaurant: model.Restaurant{RestaurantID: "r-bunsik", Name: "골목분식", Address: "서울 성동구"},
		menus: []seedMenu{
			{"떡볶이", map[string]string{"flavor": "1", "spiciness": "3", "portion": "2", "price": "1"}},
			{"짜장면", map[string]string{"flavor": "1", "spiciness": "1", "portion": "3", "price": "1"}},
			{"짬뽕", map[string]string{"flavor": "2", "spiciness": "4", "portion": "3", "price": "1"}},
		},
	},
}

// Seed fills an empty database with demo restaurants, menus and the demo
// account. It does nothing when restaurants exist.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, sr := range seedRestaurants {
		if _, err := s.UpsertRestaurant(ctx, sr.restaurant); err != nil {
			return fmt.Errorf("seed restaurant %s: %w", sr.restaurant.Name, err)
		}
		for _, sm := range sr.menus {
			m, err := s.AddMenu(ctx, sr.restaurant.RestaurantID, sm.name, nil)
			if err != nil {
				return fmt.Errorf("seed menu %s: %w", sm.name, err)
			}
			if err := s.AddEvaluation(ctx, m.MenuID, model.Evaluation{Scores: sm.scores}, nil); err != nil {
				return fmt.Errorf("seed evaluation %s: %w", sm.name, err)
			}
		}
	}

	return s.CreateUser(ctx, SeedUsername, SeedEmail, SeedPassword)
}
