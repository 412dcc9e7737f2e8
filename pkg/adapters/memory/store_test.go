package memory_test

import (
	"testing"

	"github.com/aretw0/lineator/pkg/adapters/memory"
	"github.com/aretw0/lineator/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultStoreContract(t, store)
}
