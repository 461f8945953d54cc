package riot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	t.Run("known regions", func(t *testing.T) {
		expected := map[string]string{
			"NA":  "https://na1.api.riotgames.com",
			"EUW": "https://euw1.api.riotgames.com",
			"KR":  "https://kr.api.riotgames.com",
			"VN":  "https://vn2.api.riotgames.com",
		}
		for region, want := range expected {
			got, err := BaseURL(region)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("region codes are case insensitive", func(t *testing.T) {
		got, err := BaseURL("na")
		require.NoError(t, err)
		assert.Equal(t, "https://na1.api.riotgames.com", got)
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := BaseURL("XX")
		assert.ErrorIs(t, err, ErrUnknownRegion)
	})

	t.Run("all fifteen regions resolve", func(t *testing.T) {
		regions := Regions()
		assert.Len(t, regions, 15)
		for _, region := range regions {
			_, err := BaseURL(region)
			assert.NoError(t, err)
		}
	})
}

func TestLeaguePath(t *testing.T) {
	t.Run("apex tier", func(t *testing.T) {
		path, err := LeaguePath("master", "", 1)
		require.NoError(t, err)
		assert.Equal(t, "/lol/league/v4/masterleagues/by-queue/RANKED_SOLO_5x5", path)
	})

	t.Run("apex tier is case insensitive", func(t *testing.T) {
		path, err := LeaguePath("Challenger", "", 1)
		require.NoError(t, err)
		assert.Equal(t, "/lol/league/v4/challengerleagues/by-queue/RANKED_SOLO_5x5", path)
	})

	t.Run("paginated entries", func(t *testing.T) {
		path, err := LeaguePath("gold", "2", 3)
		require.NoError(t, err)
		assert.Equal(t, "/lol/league/v4/entries/RANKED_SOLO_5x5/GOLD/II?page=3", path)
	})

	t.Run("division four", func(t *testing.T) {
		path, err := LeaguePath("iron", "4", 1)
		require.NoError(t, err)
		assert.Equal(t, "/lol/league/v4/entries/RANKED_SOLO_5x5/IRON/IV?page=1", path)
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := LeaguePath("wood", "1", 1)
		assert.ErrorIs(t, err, ErrUnknownTier)
	})

	t.Run("unknown division", func(t *testing.T) {
		_, err := LeaguePath("gold", "5", 1)
		assert.ErrorIs(t, err, ErrUnknownDivision)
	})

	t.Run("apex tier with division", func(t *testing.T) {
		_, err := LeaguePath("grandmaster", "1", 1)
		assert.ErrorIs(t, err, ErrApexDivision)
	})
}

func TestSummonerPath(t *testing.T) {
	assert.Equal(t, "/lol/summoner/v4/summoners/abc123", SummonerPath("abc123"))
}

func TestDivisionNumeral(t *testing.T) {
	for code, want := range map[string]string{"1": "I", "2": "II", "3": "III", "4": "IV", "": ""} {
		got, err := DivisionNumeral(code)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DivisionNumeral("V")
	assert.ErrorIs(t, err, ErrUnknownDivision)
}

func TestIsApexTier(t *testing.T) {
	assert.True(t, IsApexTier("master"))
	assert.True(t, IsApexTier("GRANDMASTER"))
	assert.True(t, IsApexTier("Challenger"))
	assert.False(t, IsApexTier("diamond"))
	assert.False(t, IsApexTier(""))
}
