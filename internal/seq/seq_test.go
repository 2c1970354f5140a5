package seq

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCLI_NegativeStep(t *testing.T) {
	s, err := ParseCLI("1..-3", "-2", true)
	require.NoError(t, err)

	var got []string
	s.Each(func(v int) bool {
		got = append(got, strconv.Itoa(v))
		return true
	})
	assert.Equal(t, "1,-1,-3", strings.Join(got, ","))
}

func TestParseCLI_DefaultStepDirection(t *testing.T) {
	up, err := ParseCLI("1..3", "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, up.Step)

	down, err := ParseCLI("3..1", "", false)
	require.NoError(t, err)
	assert.Equal(t, -1, down.Step)
}

func TestParseCLI_Unbounded(t *testing.T) {
	s, err := ParseCLI("5..", "", false)
	require.NoError(t, err)
	assert.True(t, s.Infinite())

	var got []int
	s.Each(func(v int) bool {
		got = append(got, v)
		return len(got) < 3
	})
	assert.Equal(t, []int{5, 6, 7}, got)
}

func TestParse_FilterForm(t *testing.T) {
	s, err := Parse("1..3:2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, s.Values())
}

func TestParse_RejectsUnboundedFilterArg(t *testing.T) {
	_, err := Parse("1..")
	assert.Error(t, err)
}

func TestParse_RejectsZeroStep(t *testing.T) {
	_, err := Parse("1..5:0")
	assert.Error(t, err)
}
