package companydb

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Company is a customer account scoped to a route. FrequentBlades holds
// the pre-registered descriptions offered when entering a new PO.
type Company struct {
	FrequentBlades []string `json:"frequent_blades"`
}

// Database maps route name -> company name -> company record.
type Database map[string]map[string]Company

// DefaultRoutes is offered for selection while the database is still
// empty (before the first sync succeeds).
var DefaultRoutes = []string{
	"Mercer",
	"Punxy",
	"Middlefield",
	"Sparty",
	"Conneautville",
	"Townville",
	"Holmes County",
	"Cochranton",
}

// Load reads the database from path. Any failure - missing file,
// unreadable file, malformed JSON - degrades to an empty database.
func Load(path string) Database {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Database{}
	}
	var db Database
	if err := json.Unmarshal(bytes, &db); err != nil {
		return Database{}
	}
	if db == nil {
		db = Database{}
	}
	return db
}

// Save writes the database to path as pretty-printed JSON, creating
// parent directories as needed.
func Save(path string, db Database) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("company database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}

// RouteNames returns the route names in sorted order. When the database
// is empty the default route list is returned instead, so the driver can
// select a territory before the first sync.
func (db Database) RouteNames() []string {
	if len(db) == 0 {
		return append([]string(nil), DefaultRoutes...)
	}
	names := make([]string, 0, len(db))
	for name := range db {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompanyNames returns the company names under route in sorted order.
func (db Database) CompanyNames(route string) []string {
	companies, ok := db[route]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(companies))
	for name := range companies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blades returns the frequent blade descriptions for a company in sorted
// order. The merge sync unions blade sets without a defined order, so
// every read path sorts for stable dropdowns.
func (db Database) Blades(route, company string) []string {
	rec, ok := db[route][company]
	if !ok {
		return nil
	}
	blades := append([]string(nil), rec.FrequentBlades...)
	sort.Strings(blades)
	return blades
}

// HasBlades reports whether the company exists and has at least one
// frequent blade registered. The PO form is gated on this.
func (db Database) HasBlades(route, company string) bool {
	rec, ok := db[route][company]
	return ok && len(rec.FrequentBlades) > 0
}

// Clone returns a deep copy of the database.
func (db Database) Clone() Database {
	dup := make(Database, len(db))
	for route, companies := range db {
		dupCompanies := make(map[string]Company, len(companies))
		for name, rec := range companies {
			dupCompanies[name] = Company{
				FrequentBlades: append([]string(nil), rec.FrequentBlades...),
			}
		}
		dup[route] = dupCompanies
	}
	return dup
}
