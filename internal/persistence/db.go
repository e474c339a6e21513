// Package persistence provides SQLite-based storage for city state. The
// engine itself is purely in-memory; this is the repository a deployment
// injects to survive restarts.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/metropolis/internal/city"
)

// DB wraps a SQLite connection for city state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		founded TEXT NOT NULL,
		coord_x REAL NOT NULL,
		coord_y REAL NOT NULL,
		climate TEXT NOT NULL,
		terrain TEXT NOT NULL,
		size REAL NOT NULL,
		population INTEGER NOT NULL,
		population_growth_rate REAL NOT NULL,
		economic_output REAL NOT NULL,
		unemployment_rate REAL NOT NULL,
		average_income REAL NOT NULL,
		cost_of_living REAL NOT NULL,
		current_specialization TEXT NOT NULL,
		specialization_progress REAL NOT NULL,
		quality_of_life REAL NOT NULL,
		attractiveness REAL NOT NULL,
		sustainability REAL NOT NULL,
		tax_rate REAL NOT NULL,
		government_budget REAL NOT NULL,
		government_debt REAL NOT NULL,
		infrastructure_budget REAL NOT NULL,
		last_updated TEXT NOT NULL,
		version INTEGER NOT NULL,
		infrastructure_json TEXT NOT NULL,
		advantages_json TEXT NOT NULL,
		resources_json TEXT NOT NULL,
		history_json TEXT NOT NULL,
		metrics_json TEXT NOT NULL,
		policy_json TEXT NOT NULL,
		trade_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		city_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL,
		impact_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_city ON events(city_id);
	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveCities writes all cities to the database (full replace).
func (db *DB) SaveCities(cities []*city.City) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cities"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO cities
		(id, name, founded, coord_x, coord_y, climate, terrain, size,
		 population, population_growth_rate, economic_output, unemployment_rate,
		 average_income, cost_of_living, current_specialization,
		 specialization_progress, quality_of_life, attractiveness,
		 sustainability, tax_rate, government_budget, government_debt,
		 infrastructure_budget, last_updated, version,
		 infrastructure_json, advantages_json, resources_json, history_json,
		 metrics_json, policy_json, trade_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cities {
		infraJSON, _ := json.Marshal(c.Infrastructure)
		advJSON, _ := json.Marshal(c.GeographicAdvantages)
		resJSON, _ := json.Marshal(c.NaturalResources)
		histJSON, _ := json.Marshal(c.SpecializationHistory)
		metricsJSON, _ := json.Marshal(c.MonthlyMetrics)
		policyJSON, _ := json.Marshal(c.PolicyModifiers)
		tradeJSON, _ := json.Marshal(c.TradePartners)

		_, err := stmt.Exec(
			c.ID, c.Name, c.Founded.Format(time.RFC3339Nano),
			c.Coordinates.X, c.Coordinates.Y, c.Climate, c.Terrain, c.Size,
			c.Population, c.PopulationGrowthRate, c.EconomicOutput,
			c.UnemploymentRate, c.AverageIncome, c.CostOfLiving,
			c.CurrentSpecialization, c.SpecializationProgress,
			c.QualityOfLife, c.Attractiveness, c.Sustainability,
			c.TaxRate, c.GovernmentBudget, c.GovernmentDebt,
			c.InfrastructureBudget, c.LastUpdated.Format(time.RFC3339Nano), c.Version,
			string(infraJSON), string(advJSON), string(resJSON),
			string(histJSON), string(metricsJSON), string(policyJSON),
			string(tradeJSON),
		)
		if err != nil {
			return fmt.Errorf("insert city %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// cityRow mirrors the cities table for sqlx scanning.
type cityRow struct {
	ID                     string  `db:"id"`
	Name                   string  `db:"name"`
	Founded                string  `db:"founded"`
	CoordX                 float64 `db:"coord_x"`
	CoordY                 float64 `db:"coord_y"`
	Climate                string  `db:"climate"`
	Terrain                string  `db:"terrain"`
	Size                   float64 `db:"size"`
	Population             int64   `db:"population"`
	PopulationGrowthRate   float64 `db:"population_growth_rate"`
	EconomicOutput         float64 `db:"economic_output"`
	UnemploymentRate       float64 `db:"unemployment_rate"`
	AverageIncome          float64 `db:"average_income"`
	CostOfLiving           float64 `db:"cost_of_living"`
	CurrentSpecialization  string  `db:"current_specialization"`
	SpecializationProgress float64 `db:"specialization_progress"`
	QualityOfLife          float64 `db:"quality_of_life"`
	Attractiveness         float64 `db:"attractiveness"`
	Sustainability         float64 `db:"sustainability"`
	TaxRate                float64 `db:"tax_rate"`
	GovernmentBudget       float64 `db:"government_budget"`
	GovernmentDebt         float64 `db:"government_debt"`
	InfrastructureBudget   float64 `db:"infrastructure_budget"`
	LastUpdated            string  `db:"last_updated"`
	Version                int64   `db:"version"`
	InfrastructureJSON     string  `db:"infrastructure_json"`
	AdvantagesJSON         string  `db:"advantages_json"`
	ResourcesJSON          string  `db:"resources_json"`
	HistoryJSON            string  `db:"history_json"`
	MetricsJSON            string  `db:"metrics_json"`
	PolicyJSON             string  `db:"policy_json"`
	TradeJSON              string  `db:"trade_json"`
}

// LoadCities reads all saved cities.
func (db *DB) LoadCities() ([]*city.City, error) {
	var rows []cityRow
	if err := db.conn.Select(&rows, "SELECT * FROM cities ORDER BY founded"); err != nil {
		return nil, fmt.Errorf("select cities: %w", err)
	}

	cities := make([]*city.City, 0, len(rows))
	for _, r := range rows {
		c, err := r.toCity()
		if err != nil {
			return nil, fmt.Errorf("decode city %s: %w", r.ID, err)
		}
		cities = append(cities, c)
	}
	return cities, nil
}

func (r cityRow) toCity() (*city.City, error) {
	founded, err := time.Parse(time.RFC3339Nano, r.Founded)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339Nano, r.LastUpdated)
	if err != nil {
		return nil, err
	}

	c := &city.City{
		ID:                     r.ID,
		Name:                   r.Name,
		Founded:                founded,
		Coordinates:            city.Coordinates{X: r.CoordX, Y: r.CoordY},
		Climate:                city.Climate(r.Climate),
		Terrain:                city.Terrain(r.Terrain),
		Size:                   r.Size,
		Population:             r.Population,
		PopulationGrowthRate:   r.PopulationGrowthRate,
		EconomicOutput:         r.EconomicOutput,
		UnemploymentRate:       r.UnemploymentRate,
		AverageIncome:          r.AverageIncome,
		CostOfLiving:           r.CostOfLiving,
		CurrentSpecialization:  r.CurrentSpecialization,
		SpecializationProgress: r.SpecializationProgress,
		QualityOfLife:          r.QualityOfLife,
		Attractiveness:         r.Attractiveness,
		Sustainability:         r.Sustainability,
		TaxRate:                r.TaxRate,
		GovernmentBudget:       r.GovernmentBudget,
		GovernmentDebt:         r.GovernmentDebt,
		InfrastructureBudget:   r.InfrastructureBudget,
		LastUpdated:            updated,
		Version:                r.Version,
	}

	for _, field := range []struct {
		raw  string
		dest any
	}{
		{r.InfrastructureJSON, &c.Infrastructure},
		{r.AdvantagesJSON, &c.GeographicAdvantages},
		{r.ResourcesJSON, &c.NaturalResources},
		{r.HistoryJSON, &c.SpecializationHistory},
		{r.MetricsJSON, &c.MonthlyMetrics},
		{r.PolicyJSON, &c.PolicyModifiers},
		{r.TradeJSON, &c.TradePartners},
	} {
		if field.raw != "" {
			if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
				return nil, err
			}
		}
	}
	if c.Infrastructure == nil {
		c.Infrastructure = make(map[string]*city.Infrastructure)
	}
	if c.NaturalResources == nil {
		c.NaturalResources = make(map[string]*city.NaturalResource)
	}
	return c, nil
}

// SaveEvents appends development events, replacing on id collision so
// repeated snapshots stay idempotent.
func (db *DB) SaveEvents(events []city.DevelopmentEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		impactJSON, _ := json.Marshal(e.Impact)
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO events (id, city_id, timestamp, type, description, impact_json)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.CityID, e.Timestamp.Format(time.RFC3339Nano),
			string(e.Type), e.Description, string(impactJSON),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentEvents returns the most recent limit events for a city.
func (db *DB) RecentEvents(cityID string, limit int) ([]city.DevelopmentEvent, error) {
	type eventRow struct {
		ID          string `db:"id"`
		CityID      string `db:"city_id"`
		Timestamp   string `db:"timestamp"`
		Type        string `db:"type"`
		Description string `db:"description"`
		ImpactJSON  string `db:"impact_json"`
	}
	var rows []eventRow
	err := db.conn.Select(&rows,
		"SELECT * FROM events WHERE city_id = ? ORDER BY timestamp DESC LIMIT ?",
		cityID, limit,
	)
	if err != nil {
		return nil, err
	}

	events := make([]city.DevelopmentEvent, 0, len(rows))
	for _, r := range rows {
		ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decode event %s: %w", r.ID, err)
		}
		ev := city.DevelopmentEvent{
			ID:          r.ID,
			CityID:      r.CityID,
			Timestamp:   ts,
			Type:        city.EventType(r.Type),
			Description: r.Description,
		}
		if err := json.Unmarshal([]byte(r.ImpactJSON), &ev.Impact); err != nil {
			return nil, fmt.Errorf("decode event %s impact: %w", r.ID, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// SaveMeta stores a key-value pair in simulation metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sim_meta WHERE key = ?", key)
	return value, err
}

// HasCities reports whether any saved state exists.
func (db *DB) HasCities() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM cities"); err != nil {
		return false
	}
	return count > 0
}

// SaveSnapshot persists the full registry plus the event log and tick meta.
func (db *DB) SaveSnapshot(cities []*city.City, events []city.DevelopmentEvent, tick uint64) error {
	slog.Info("saving snapshot", "cities", len(cities), "events", len(events), "tick", tick)

	if err := db.SaveCities(cities); err != nil {
		return fmt.Errorf("save cities: %w", err)
	}
	if err := db.SaveEvents(events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", tick)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}
