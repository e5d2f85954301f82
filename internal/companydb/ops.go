package companydb

import (
	"fmt"
	"strings"
)

// Edit operations mutate the in-memory database only; the caller decides
// when to persist. Validation failures return an error before anything
// is touched, so a failed operation never leaves a partial mutation.

// AddRoute creates an empty route.
func (db Database) AddRoute(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("route name is empty")
	}
	if _, ok := db[name]; ok {
		return fmt.Errorf("route %q already exists", name)
	}
	db[name] = map[string]Company{}
	return nil
}

// RenameRoute moves every company under old to new. It fails when new
// already exists so two routes can never be silently merged.
func (db Database) RenameRoute(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("route name is empty")
	}
	companies, ok := db[oldName]
	if !ok {
		return fmt.Errorf("route %q not found", oldName)
	}
	if _, ok := db[newName]; ok {
		return fmt.Errorf("route %q already exists", newName)
	}
	db[newName] = companies
	delete(db, oldName)
	return nil
}

// DeleteRoute removes a route and all its companies.
func (db Database) DeleteRoute(name string) error {
	if _, ok := db[name]; !ok {
		return fmt.Errorf("route %q not found", name)
	}
	delete(db, name)
	return nil
}

// AddCompany creates a company under route, adding the route implicitly
// when it does not exist yet.
func (db Database) AddCompany(route, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("company name is empty")
	}
	if route = strings.TrimSpace(route); route == "" {
		return fmt.Errorf("route name is empty")
	}
	if _, ok := db[route]; !ok {
		db[route] = map[string]Company{}
	}
	if _, ok := db[route][name]; ok {
		return fmt.Errorf("company %q already exists", name)
	}
	db[route][name] = Company{FrequentBlades: []string{}}
	return nil
}

// RenameCompany renames a company within its route, failing on collision.
func (db Database) RenameCompany(route, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("company name is empty")
	}
	companies, ok := db[route]
	if !ok {
		return fmt.Errorf("route %q not found", route)
	}
	rec, ok := companies[oldName]
	if !ok {
		return fmt.Errorf("company %q not found", oldName)
	}
	if _, ok := companies[newName]; ok {
		return fmt.Errorf("company %q already exists", newName)
	}
	companies[newName] = rec
	delete(companies, oldName)
	return nil
}

// DeleteCompany removes a company from a route.
func (db Database) DeleteCompany(route, name string) error {
	companies, ok := db[route]
	if !ok {
		return fmt.Errorf("route %q not found", route)
	}
	if _, ok := companies[name]; !ok {
		return fmt.Errorf("company %q not found", name)
	}
	delete(companies, name)
	return nil
}

// AddOrEditBlade appends a blade description, or replaces editingOld in
// place when it is present. Blade sets never hold duplicates; appending
// an existing description is a no-op.
func (db Database) AddOrEditBlade(route, company, blade, editingOld string) error {
	blade = strings.TrimSpace(blade)
	if blade == "" {
		return fmt.Errorf("blade description is empty")
	}
	rec, ok := db[route][company]
	if !ok {
		return fmt.Errorf("company %q not found on route %q", company, route)
	}
	if editingOld != "" {
		old := -1
		dup := false
		for i, existing := range rec.FrequentBlades {
			switch existing {
			case editingOld:
				old = i
			case blade:
				dup = true
			}
		}
		if old >= 0 {
			if dup {
				// Renaming onto an existing description collapses the
				// two entries rather than duplicating one.
				rec.FrequentBlades = append(rec.FrequentBlades[:old], rec.FrequentBlades[old+1:]...)
			} else {
				rec.FrequentBlades[old] = blade
			}
			db[route][company] = rec
			return nil
		}
	}
	for _, existing := range rec.FrequentBlades {
		if existing == blade {
			return nil
		}
	}
	rec.FrequentBlades = append(rec.FrequentBlades, blade)
	db[route][company] = rec
	return nil
}

// RemoveBlade deletes a blade description; absent blades are a no-op.
func (db Database) RemoveBlade(route, company, blade string) {
	rec, ok := db[route][company]
	if !ok {
		return
	}
	for i, existing := range rec.FrequentBlades {
		if existing == blade {
			rec.FrequentBlades = append(rec.FrequentBlades[:i], rec.FrequentBlades[i+1:]...)
			db[route][company] = rec
			return
		}
	}
}
