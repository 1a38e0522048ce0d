package page

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int `json:"id"`
}

func TestDecode(t *testing.T) {
	positive := func(it *item) error {
		if it.ID <= 0 {
			return errors.New("bad id")
		}
		return nil
	}

	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantEmpty bool
		wantLen   int
	}{
		{
			name:    "success - two items",
			body:    `{"content":[{"id":1},{"id":2}],"pageNumber":0,"pageSize":10,"totalPages":1,"totalElements":2}`,
			wantLen: 2,
		},
		{
			name:      "success - empty content",
			body:      `{"content":[],"pageNumber":0,"pageSize":10,"totalPages":0,"totalElements":0}`,
			wantEmpty: true,
		},
		{
			name:    "error - page beyond total",
			body:    `{"content":[],"pageNumber":3,"pageSize":10,"totalPages":2,"totalElements":15}`,
			wantErr: true,
		},
		{
			name:    "error - negative size",
			body:    `{"content":[],"pageNumber":0,"pageSize":-1,"totalPages":0,"totalElements":0}`,
			wantErr: true,
		},
		{
			name:    "error - invalid item",
			body:    `{"content":[{"id":0}],"pageNumber":0,"pageSize":10,"totalPages":1,"totalElements":1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode[item](strings.NewReader(tt.body), positive)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmpty, p.Empty())
			assert.Len(t, p.Content, tt.wantLen)
		})
	}
}
