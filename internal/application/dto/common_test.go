package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
)

func TestDefaultPage_NormalizaLimites(t *testing.T) {
	cases := []struct {
		name       string
		in, expect dto.PageRequest
	}{
		{"cero toma el defecto", dto.PageRequest{}, dto.PageRequest{Limit: dto.DefaultPageLimit}},
		{"negativos se normalizan", dto.PageRequest{Limit: -3, Offset: -10}, dto.PageRequest{Limit: dto.DefaultPageLimit}},
		{"exceso se recorta al máximo", dto.PageRequest{Limit: 500, Offset: 10}, dto.PageRequest{Limit: dto.MaxPageLimit, Offset: 10}},
		{"valores válidos quedan igual", dto.PageRequest{Limit: 30, Offset: 3}, dto.PageRequest{Limit: 30, Offset: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := tc.in
			page.DefaultPage()
			assert.Equal(t, tc.expect, page)
		})
	}
}
