package pagination

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, query string) Pagination {
	t.Helper()
	var got Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFromRequest(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	return got
}

func TestParseFromRequest(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: DefaultLimit}, parse(t, ""))
	assert.Equal(t, Pagination{Page: 3, Limit: 5, Offset: 10}, parse(t, "?page=3&limit=5"))
	assert.Equal(t, Pagination{Page: 1, Limit: MaxLimit}, parse(t, "?page=-2&limit=1000"))
	assert.Equal(t, Pagination{Page: 1, Limit: DefaultLimit}, parse(t, "?page=x&limit=0"))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Pagination{Page: 2, Limit: 2, Offset: 2}
	assert.Equal(t, []int{3, 4}, Slice(&p, items))
	assert.Equal(t, int64(5), p.Total)

	p = Pagination{Page: 3, Limit: 2, Offset: 4}
	assert.Equal(t, []int{5}, Slice(&p, items))

	p = Pagination{Page: 9, Limit: 2, Offset: 16}
	assert.Equal(t, []int{}, Slice(&p, items))

	meta := Response(Pagination{Page: 1, Limit: 2, Total: 5}, nil)["meta"].(fiber.Map)
	assert.Equal(t, int64(3), meta["total_pages"])
}
