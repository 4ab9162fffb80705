package inflect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascal(t *testing.T) {
	cases := map[string]string{
		"user_account":    "UserAccount",
		"order_item_id":   "OrderItemId",
		"already_Pascal":  "AlreadyPascal",
		"id":              "Id",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToPascal(in), "input %q", in)
	}
}

func TestToCamel(t *testing.T) {
	assert.Equal(t, "userAccount", ToCamel("user_account"))
	assert.Equal(t, "id", ToCamel("id"))
}

func TestDefaultConfigPluralization(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "users", cfg.Pluralize("user"))
	assert.Equal(t, "user", cfg.Singularize("users"))
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry(DefaultConfig(), "insert", "update", "patch")

	res := r.Resolve("UserInsert")
	assert.Equal(t, Resolution{Entity: "User", Kind: "insert"}, res)

	res = r.Resolve("User")
	assert.Equal(t, Resolution{Entity: "User"}, res)

	// memoized: a second call returns the identical cached value.
	again := r.Resolve("UserInsert")
	assert.Equal(t, res.Kind, "")
	assert.Equal(t, Resolution{Entity: "User", Kind: "insert"}, again)
}

func TestRegistryMemoize(t *testing.T) {
	r := NewRegistry(DefaultConfig(), "insert", "update", "patch")
	derived := r.Memoize("Order", "update")
	assert.Equal(t, "OrderUpdate", derived)
	assert.Equal(t, Resolution{Entity: "Order", Kind: "update"}, r.Resolve(derived))
}
