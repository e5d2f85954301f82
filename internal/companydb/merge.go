package companydb

import "sort"

// RemoteCompany is the wire form the sync endpoint serves for a single
// company. The server calls the blade list "descriptions".
type RemoteCompany struct {
	Descriptions []string `json:"descriptions"`
}

// RemoteSnapshot is the full payload of the company database endpoint:
// route -> company -> descriptions.
type RemoteSnapshot map[string]map[string]RemoteCompany

// Convert turns a remote snapshot into the local database shape.
func Convert(remote RemoteSnapshot) Database {
	db := make(Database, len(remote))
	for route, companies := range remote {
		db[route] = make(map[string]Company, len(companies))
		for name, rec := range companies {
			db[route][name] = Company{
				FrequentBlades: append([]string(nil), rec.Descriptions...),
			}
		}
	}
	return db
}

// Merge unions a converted remote snapshot into db. Routes and companies
// missing locally are inserted as-is; for companies present on both
// sides the blade sets are unioned with duplicates eliminated. Local
// data that the server does not know about is never removed, which makes
// the operation idempotent: merging the same snapshot twice changes
// nothing the second time.
func (db Database) Merge(remote Database) {
	for route, companies := range remote {
		if _, ok := db[route]; !ok {
			db[route] = map[string]Company{}
		}
		for name, rec := range companies {
			existing, ok := db[route][name]
			if !ok {
				db[route][name] = Company{
					FrequentBlades: append([]string(nil), rec.FrequentBlades...),
				}
				continue
			}
			db[route][name] = Company{
				FrequentBlades: unionBlades(existing.FrequentBlades, rec.FrequentBlades),
			}
		}
	}
}

func unionBlades(local, remote []string) []string {
	seen := make(map[string]struct{}, len(local)+len(remote))
	for _, blade := range local {
		seen[blade] = struct{}{}
	}
	for _, blade := range remote {
		seen[blade] = struct{}{}
	}
	merged := make([]string, 0, len(seen))
	for blade := range seen {
		merged = append(merged, blade)
	}
	// The union itself is unordered; sort so persisted files and
	// dropdowns stay stable between runs.
	sort.Strings(merged)
	return merged
}
