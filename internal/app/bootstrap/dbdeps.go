// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"database/sql"

	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Mongo carries the document records (categories, games, trainings);
// SQL carries the relational student records.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	SQL           *sql.DB
}
