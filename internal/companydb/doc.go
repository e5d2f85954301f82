// Package companydb holds the route -> company -> frequent blades
// mapping the driver works from, persisted as pretty-printed JSON in
// company_database.json.
//
// The database is edited locally (routes, companies, and blade
// descriptions can be added, renamed, and deleted) and reconciled with
// the office's copy in one of two ways:
//
//   - merge: every remote route and company is inserted, and blade
//     lists for companies present on both sides become the union of
//     the two. Local-only routes and companies survive. Merging the
//     same snapshot twice changes nothing.
//   - replace: the local database is discarded wholesale in favor of
//     the remote snapshot.
//
// Any failure to read the file degrades to an empty database rather
// than an error, so the app always starts.
package companydb
