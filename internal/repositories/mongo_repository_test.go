package repositories_test

import (
	"context"
	"os"
	"testing"

	"sportshop/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newMongoStore connects to MONGO_TEST_URI using a throwaway database that
// is dropped after the test.
func newMongoStore(t *testing.T) *repositories.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, db, err := repositories.OpenMongo(ctx, uri, "sportshop_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return repositories.NewMongoStore(client, db)
}

func TestMongoUserRepository(t *testing.T) {
	runUserRepositoryContract(t, newMongoStore(t).Users)
}

func TestMongoProductRepository(t *testing.T) {
	runProductRepositoryContract(t, newMongoStore(t).Products)
}

func TestMongoCartRepository(t *testing.T) {
	runCartRepositoryContract(t, newMongoStore(t).Carts)
}

func TestMongoOrderRepository(t *testing.T) {
	runOrderRepositoryContract(t, newMongoStore(t).Orders)
}
