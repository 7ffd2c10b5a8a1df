package edtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		expr    string
		want    Addr
		wantErr string
	}{
		{expr: "10", want: Addr{Kind: AddrNumber, Number: 10}},
		{expr: "/pattern/", want: Addr{Kind: AddrRegex, Regex: "pattern"}},
		{expr: "/pattern", want: Addr{Kind: AddrRegex, Regex: "pattern"}},
		{expr: "/pattern/+12", want: Addr{Kind: AddrRegex, Regex: "pattern", Delta: 12}},
		{expr: "/pattern/+", want: Addr{Kind: AddrRegex, Regex: "pattern", Delta: 1}},
		{expr: "/pattern/++++", want: Addr{Kind: AddrRegex, Regex: "pattern", Delta: 4}},
		{expr: "/pattern/---", want: Addr{Kind: AddrRegex, Regex: "pattern", Delta: -3}},
		{expr: "/pattern/-+-", wantErr: `invalid address delta: "/pattern/-+-"`},
		{expr: "/pattern/3", want: Addr{Kind: AddrRegex, Regex: "pattern", Delta: 3}},
		{expr: ".", want: Addr{}},
		{expr: ".+2", want: Addr{Delta: 2}},
		{expr: "$", want: Addr{Kind: AddrLast}},
		{expr: "$-5", want: Addr{Kind: AddrLast, Delta: -5}},
		{expr: "+++", want: Addr{Delta: 3}},
		{expr: "", want: Addr{}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			addr, _, err := ParseAddr(tt.expr)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestParseAddr_Rest(t *testing.T) {
	tests := []struct {
		expr     string
		want     Addr
		wantRest string
	}{
		// Delta parsing stops at the first inconsistent character.
		{expr: "/pattern/+12--", want: Addr{Kind: AddrRegex, Regex: "pattern", Delta: 12}, wantRest: "--"},
		{expr: "123more here", want: Addr{Kind: AddrNumber, Number: 123}, wantRest: "more here"},
		{expr: "no good", want: Addr{}, wantRest: "no good"},
		{expr: "$-5,hello", want: Addr{Kind: AddrLast, Delta: -5}, wantRest: ",hello"},
		{expr: "10,20", want: Addr{Kind: AddrNumber, Number: 10}, wantRest: ",20"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			addr, rest, err := ParseAddr(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestParseAddr_IsRelative(t *testing.T) {
	rel, _, err := ParseAddr("+2")
	require.NoError(t, err)
	assert.True(t, rel.IsRelative())

	abs, _, err := ParseAddr("7")
	require.NoError(t, err)
	assert.False(t, abs.IsRelative())
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		expr    string
		want    Range
		wantErr string
	}{
		{expr: "10", want: Range{Start: Addr{Kind: AddrNumber, Number: 10}, From0: true}},
		{expr: "10!", wantErr: `invalid range: "10!"`},
		{expr: "hello", wantErr: `invalid range: "hello"`},
		{
			expr: "10,20",
			want: Range{
				Start: Addr{Kind: AddrNumber, Number: 10},
				End:   &Addr{Kind: AddrNumber, Number: 20},
				From0: true,
			},
		},
		{
			expr: "10;20",
			want: Range{
				Start: Addr{Kind: AddrNumber, Number: 10},
				End:   &Addr{Kind: AddrNumber, Number: 20},
			},
		},
		{
			expr: "/start/++;/end/-2",
			want: Range{
				Start: Addr{Kind: AddrRegex, Regex: "start", Delta: 2},
				End:   &Addr{Kind: AddrRegex, Regex: "end", Delta: -2},
			},
		},
		{
			expr: "/start/+10,$",
			want: Range{
				Start: Addr{Kind: AddrRegex, Regex: "start", Delta: 10},
				End:   &Addr{Kind: AddrLast},
				From0: true,
			},
		},
		{expr: "12,20extra", wantErr: `invalid range tail: "extra"`},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			r, err := ParseRange(tt.expr)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}
