package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo brands/models/cars if the catalog is empty
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Brands
CREATE TABLE IF NOT EXISTS brands(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);

-- Car models (model-of-brand)
CREATE TABLE IF NOT EXISTS car_models(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  brand_id INTEGER NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  UNIQUE(brand_id, name)
);
CREATE INDEX IF NOT EXISTS idx_car_models_brand ON car_models(brand_id);

-- Cars
CREATE TABLE IF NOT EXISTS cars(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  brand_id INTEGER NOT NULL REFERENCES brands(id) ON DELETE RESTRICT,
  model_id INTEGER NOT NULL REFERENCES car_models(id) ON DELETE RESTRICT,
  year INTEGER NOT NULL CHECK (year > 0),
  engine_type TEXT NOT NULL CHECK (engine_type IN ('petrol','diesel','hybrid','electric')),
  transmission TEXT NOT NULL CHECK (transmission IN ('manual','automatic','cvt','dct')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_cars_brand      ON cars(brand_id);
CREATE INDEX IF NOT EXISTS idx_cars_model      ON cars(model_id);
CREATE INDEX IF NOT EXISTS idx_cars_engine     ON cars(engine_type);
CREATE INDEX IF NOT EXISTS idx_cars_created_at ON cars(created_at);

-- Favorites
CREATE TABLE IF NOT EXISTS favorites(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  car_id INTEGER NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, car_id)
);
CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','STAFF')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM brands`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo brands/models/cars")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO brands(id,name) VALUES
	  (1,'Toyota'),
	  (2,'Tesla'),
	  (3,'BMW'),
	  (4,'Nissan')`)

	tx.MustExec(`INSERT INTO car_models(id,brand_id,name) VALUES
	  (1,1,'Corolla'),
	  (2,1,'Camry'),
	  (3,1,'RAV4'),
	  (4,2,'Model 3'),
	  (5,2,'Model Y'),
	  (6,3,'3 Series'),
	  (7,3,'X5'),
	  (8,4,'Leaf'),
	  (9,4,'Qashqai')`)

	tx.MustExec(`INSERT INTO cars(brand_id,model_id,year,engine_type,transmission,price,description) VALUES
	  (1,1,2020,'petrol','manual',18500.00,'One owner, full service history.'),
	  (1,2,2022,'hybrid','automatic',31200.00,'Hybrid sedan, low mileage.'),
	  (1,3,2021,'hybrid','cvt',28900.00,'Compact SUV with adaptive cruise.'),
	  (2,4,2022,'electric','automatic',39990.00,'Long range battery, autopilot.'),
	  (2,5,2023,'electric','automatic',48990.00,'Seven seat configuration.'),
	  (3,6,2019,'petrol','automatic',33500.00,'Sport line trim.'),
	  (3,7,2021,'diesel','automatic',61000.00,'Panoramic roof, towing package.'),
	  (4,8,2021,'electric','automatic',27400.00,'City commuter, fast charging.'),
	  (4,9,2020,'petrol','cvt',21300.00,'Popular family crossover.'),
	  (1,1,2018,'petrol','manual',14900.00,'Budget friendly hatchback.'),
	  (3,6,2022,'petrol','dct',42700.00,'M Sport package, heads-up display.'),
	  (4,9,2022,'diesel','manual',24600.00,'Economical diesel crossover.')`)

	return tx.Commit()
}

// seedUsers ensures two USERs and one STAFF account exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Username, Role, Hash string
	}
	mk := func(id, username, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Username: username, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice", "USER", "Passw0rd!"),
		mk("u-bob", "bob", "USER", "Passw0rd!"),
		mk("u-dana", "dana", "STAFF", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,password_hash,role)
			VALUES(?,?,?,?)
			ON CONFLICT(username) DO NOTHING
		`, x.ID, x.Username, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
