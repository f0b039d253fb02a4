package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	_ "modernc.org/sqlite"

	"github.com/nikbrunner/mev/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the database at path and migrates it.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the migrated schema version.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLiteStore) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the catalog: restaurants, menus and their facet values.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS menus (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			image_mime TEXT,
			image BLOB,
			created_at TEXT NOT NULL,
			FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_menus_restaurant_id ON menus(restaurant_id);

		CREATE TABLE IF NOT EXISTS menu_facets (
			menu_id TEXT NOT NULL,
			facet_key TEXT NOT NULL,
			option_id TEXT NOT NULL,
			PRIMARY KEY (menu_id, facet_key),
			FOREIGN KEY (menu_id) REFERENCES menus(id) ON DELETE CASCADE
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds accounts and evaluations.
func (s *SQLiteStore) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS verifications (
			token TEXT PRIMARY KEY NOT NULL,
			email TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY NOT NULL,
			username TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY NOT NULL,
			menu_id TEXT NOT NULL,
			result TEXT NOT NULL,
			image_mime TEXT,
			image BLOB,
			created_at TEXT NOT NULL,
			FOREIGN KEY (menu_id) REFERENCES menus(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_evaluations_menu_id ON evaluations(menu_id);

		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// imageURL is where the development server serves a menu picture.
func imageURL(menuID string, hasImage bool) string {
	if !hasImage {
		return ""
	}
	return "/images/" + menuID
}

// Search returns the menu items matching q, ordered by ID. The final item
// carries Last when nothing matches beyond it.
func (s *SQLiteStore) Search(ctx context.Context, q SearchQuery) ([]model.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.seq, m.id, m.name, m.restaurant_id, r.name, m.image IS NOT NULL
		FROM menus m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.seq > ?
		ORDER BY m.seq
	`, q.After)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.MenuItem
	for rows.Next() {
		var it model.MenuItem
		var seq int64
		var hasImage bool
		if err := rows.Scan(&seq, &it.MenuID, &it.MenuName, &it.RestaurantID, &it.RestaurantName, &hasImage); err != nil {
			return nil, err
		}
		it.ID = strconv.FormatInt(seq, 10)
		it.ImageURL = imageURL(it.MenuID, hasImage)
		candidates = append(candidates, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	facets, err := s.facetValues(ctx)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Facets = facets[candidates[i].MenuID]
	}

	matched := matchKeyword(candidates, q.Keyword)
	filtered := matched[:0]
	for _, it := range matched {
		if matchFacets(it.Facets, q.Facets) {
			filtered = append(filtered, it)
		}
	}

	if q.Limit > 0 && len(filtered) > q.Limit {
		return filtered[:q.Limit], nil
	}
	if len(filtered) > 0 {
		filtered[len(filtered)-1].Last = true
	}
	return filtered, nil
}

// matchKeyword keeps the items whose menu or restaurant name fuzzy-matches
// keyword, preserving their order.
func matchKeyword(items []model.MenuItem, keyword string) []model.MenuItem {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return items
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.MenuName + " " + it.RestaurantName
	}

	matches := fuzzy.Find(keyword, names)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	sort.Ints(idx)

	out := make([]model.MenuItem, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

func matchFacets(have map[string]string, want map[string][]string) bool {
	for key, options := range want {
		if len(options) == 0 {
			continue
		}
		v, ok := have[key]
		if !ok {
			return false
		}
		found := false
		for _, o := range options {
			if o == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *SQLiteStore) facetValues(ctx context.Context) (map[string]map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT menu_id, facet_key, option_id FROM menu_facets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]string)
	for rows.Next() {
		var menuID, key, option string
		if err := rows.Scan(&menuID, &key, &option); err != nil {
			return nil, err
		}
		if out[menuID] == nil {
			out[menuID] = make(map[string]string)
		}
		out[menuID][key] = option
	}
	return out, rows.Err()
}

// UpsertRestaurant stores r, or returns the stored restaurant with r's ID.
func (s *SQLiteStore) UpsertRestaurant(ctx context.Context, r model.Restaurant) (model.Restaurant, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, address) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, r.RestaurantID, r.Name, r.Address)
	if err != nil {
		return model.Restaurant{}, err
	}

	var out model.Restaurant
	err = s.db.QueryRowContext(ctx, `SELECT id, name, address FROM restaurants WHERE id = ?`, r.RestaurantID).
		Scan(&out.RestaurantID, &out.Name, &out.Address)
	return out, err
}

func (s *SQLiteStore) restaurantExists(ctx context.Context, id string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants WHERE id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	return nil
}

// Menus lists the menus of a restaurant in creation order.
func (s *SQLiteStore) Menus(ctx context.Context, restaurantID string) ([]model.Menu, error) {
	if err := s.restaurantExists(ctx, restaurantID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, restaurant_id, image IS NOT NULL
		FROM menus
		WHERE restaurant_id = ?
		ORDER BY seq
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := []model.Menu{}
	for rows.Next() {
		var m model.Menu
		var hasImage bool
		if err := rows.Scan(&m.MenuID, &m.MenuName, &m.RestaurantID, &hasImage); err != nil {
			return nil, err
		}
		m.ImageURL = imageURL(m.MenuID, hasImage)
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// AddMenu creates a menu under restaurantID. img may be nil.
func (s *SQLiteStore) AddMenu(ctx context.Context, restaurantID, name string, img *Image) (model.Menu, error) {
	if err := s.restaurantExists(ctx, restaurantID); err != nil {
		return model.Menu{}, err
	}

	m := model.Menu{MenuID: model.GenerateID(), MenuName: name, RestaurantID: restaurantID}
	var mime sql.NullString
	var data any // nil binds NULL
	if img != nil {
		mime = sql.NullString{String: img.MIME, Valid: true}
		data = img.Data
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO menus (id, name, restaurant_id, image_mime, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.MenuID, m.MenuName, restaurantID, mime, data, now())
	if err != nil {
		return model.Menu{}, err
	}
	m.ImageURL = imageURL(m.MenuID, img != nil)
	return m, nil
}

// MenuImage returns the picture of a menu.
func (s *SQLiteStore) MenuImage(ctx context.Context, menuID string) (Image, error) {
	var img Image
	var mime sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT image_mime, image FROM menus WHERE id = ?`, menuID).
		Scan(&mime, &img.Data)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !mime.Valid) {
		return Image{}, fmt.Errorf("image of menu %s: %w", menuID, ErrNotFound)
	}
	if err != nil {
		return Image{}, err
	}
	img.MIME = mime.String
	return img, nil
}

// AddEvaluation records ev and makes its scores the facet values of the
// menu.
func (s *SQLiteStore) AddEvaluation(ctx context.Context, menuID string, ev model.Evaluation, img *Image) error {
	result, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM menus WHERE id = ?`, menuID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("menu %s: %w", menuID, ErrNotFound)
	}

	var mime sql.NullString
	var data any // nil binds NULL
	if img != nil {
		mime = sql.NullString{String: img.MIME, Valid: true}
		data = img.Data
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO evaluations (id, menu_id, result, image_mime, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, model.GenerateID(), menuID, string(result), mime, data, now()); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO menu_facets (menu_id, facet_key, option_id) VALUES (?, ?, ?)
		ON CONFLICT(menu_id, facet_key) DO UPDATE SET option_id = excluded.option_id
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, option := range ev.Scores {
		if _, err := stmt.ExecContext(ctx, menuID, key, option); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CreateUser registers an account. A taken username or email is
// ErrConflict.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, email, password string) error {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`, username, strings.ToLower(email)).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("user %s: %w", username, ErrConflict)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, strings.ToLower(email), hashPassword(password))
	return err
}

// Authenticate checks a username and password.
func (s *SQLiteStore) Authenticate(ctx context.Context, username, password string) error {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCredentials
	}
	if err != nil {
		return err
	}
	if hash != hashPassword(password) {
		return ErrCredentials
	}
	return nil
}

// CreateSession issues a session token for username.
func (s *SQLiteStore) CreateSession(ctx context.Context, username string) (string, error) {
	token := model.GenerateID()
	_, err := s.db.ExecContext(ctx, `INSERT INTO sessions (token, username, created_at) VALUES (?, ?, ?)`,
		token, username, now())
	if err != nil {
		return "", err
	}
	return token, nil
}

// EmailRegistered reports whether an account uses email.
func (s *SQLiteStore) EmailRegistered(ctx context.Context, email string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, strings.ToLower(email)).Scan(&n)
	return n > 0, err
}

// CreateVerification stores a sign-up token for email. Registered emails
// are ErrConflict.
func (s *SQLiteStore) CreateVerification(ctx context.Context, email string) (string, error) {
	registered, err := s.EmailRegistered(ctx, email)
	if err != nil {
		return "", err
	}
	if registered {
		return "", fmt.Errorf("email %s: %w", email, ErrConflict)
	}

	token := model.GenerateID()
	_, err = s.db.ExecContext(ctx, `INSERT INTO verifications (token, email, created_at) VALUES (?, ?, ?)`,
		token, strings.ToLower(email), now())
	if err != nil {
		return "", err
	}
	return token, nil
}

// UsernameByEmail returns the account name registered with email.
func (s *SQLiteStore) UsernameByEmail(ctx context.Context, email string) (string, error) {
	var username string
	err := s.db.QueryRowContext(ctx, `SELECT username FROM users WHERE email = ?`, strings.ToLower(email)).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("email %s: %w", email, ErrNotFound)
	}
	return username, err
}

// ResetPassword replaces the password of the account registered with email
// by a temporary one and returns it.
func (s *SQLiteStore) ResetPassword(ctx context.Context, email string) (string, error) {
	temp := model.GenerateSecret()
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE email = ?`,
		hashPassword(temp), strings.ToLower(email))
	if err != nil {
		return "", err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", fmt.Errorf("email %s: %w", email, ErrNotFound)
	}
	return temp, nil
}
