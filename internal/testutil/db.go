// Package testutil wires tests to a real MongoDB instance and carries
// small HTTP test helpers. Store and handler tests run against actual
// collections with the production index set, so slug uniqueness and
// ordering behave exactly as deployed.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/indexes"
)

// dbPrefix prefixes every per-test database name so a stray local
// mongod never mixes test data with anything real.
const dbPrefix = "saigon3cms_test"

// testMongoURI resolves the MongoDB connection string for tests.
// SAIGON3CMS_TEST_MONGO_URI overrides the local default, which lets CI
// point the suite at a container without code changes.
func testMongoURI() string {
	if uri := os.Getenv("SAIGON3CMS_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// getClient connects once and shares the client across every test in
// the binary. The pool is sized for packages running in parallel.
func getClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Client().
			ApplyURI(testMongoURI()).
			SetMaxPoolSize(200).
			SetMinPoolSize(10).
			SetMaxConnIdleTime(30 * time.Second).
			SetConnectTimeout(10 * time.Second).
			SetServerSelectionTimeout(10 * time.Second)

		if client, clientErr = mongo.Connect(ctx, opts); clientErr != nil {
			return
		}
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// SetupTestDB hands the test its own database, named after the test,
// dropped clean before use and again on cleanup. EnsureAll runs so the
// unique slug and submission indexes are in force, matching production.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	cli, err := getClient()
	if err != nil {
		t.Fatalf("failed to connect to test MongoDB: %v", err)
	}

	db := cli.Database(fmt.Sprintf("%s_%s", dbPrefix, dbNameSuffix(t.Name())))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		t.Fatalf("failed to drop test database: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database on cleanup: %v", err)
		}
	})

	return db
}

// dbNameSuffix maps a Go test name (which may contain slashes and
// spaces from subtests) onto MongoDB's database-name alphabet.
// Database names cap at 63 bytes; the prefix plus underscore uses 16,
// leaving 47 for the suffix.
func dbNameSuffix(name string) string {
	const maxLen = 47
	suffix := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if len(suffix) > maxLen {
		suffix = suffix[:maxLen]
	}
	return suffix
}

// TestContext returns a context with a timeout generous enough for any
// single store operation against a local MongoDB.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
