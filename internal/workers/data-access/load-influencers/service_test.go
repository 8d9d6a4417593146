package loadinfluencers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate
257,alex257,Alex Johnson,29,nonbinary,alex257@example.com,India,Technology,73418,0.0587,3802,423,0.0342
258,casey258,Casey Williams,35,female,casey258@example.com,USA,Technology,150230,0.081,10901,1220,0.051
259,riley259,Riley Brown,22,male,riley259@example.com,India,Fitness,25000,0.12,2700,300,0.08
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func createValidConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	return cfg
}

func newTestService(t *testing.T, cfg *Config) *Service {
	return NewService(ServiceDependencies{Logger: logger.NewTestLogger(t)}, cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "tab delimiter", modify: func(c *Config) { c.Delimiter = "\t" }},
		{name: "empty path", modify: func(c *Config) { c.Path = "" }, wantErr: "path is required"},
		{name: "long delimiter", modify: func(c *Config) { c.Delimiter = ";;" }, wantErr: "single character"},
		{name: "negative max rows", modify: func(c *Config) { c.MaxRows = -1 }, wantErr: "max_rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createValidConfig("influencers.csv")
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExecute_LoadsEveryRow(t *testing.T) {
	path := writeFile(t, "influencers.csv", sampleCSV)

	out, err := newTestService(t, createValidConfig(path)).Execute(context.Background(), &Input{})
	require.NoError(t, err)

	require.Len(t, out.Records, 3)
	assert.Equal(t, 3, out.TotalRows)
	assert.Equal(t, []string{"Technology", "Fitness"}, out.Categories)

	first := out.Records[0]
	assert.Equal(t, models.InfluencerRecord{
		ID:                 257,
		Username:           "alex257",
		FullName:           "Alex Johnson",
		Age:                29,
		Gender:             "nonbinary",
		Email:              "alex257@example.com",
		Country:            "India",
		Category:           "Technology",
		Followers:          73418,
		Engagement:         0.0587,
		AvgLikes:           3802,
		AvgComments:        423,
		FollowerGrowthRate: 0.0342,
	}, first)
}

func TestExecute_ColumnOrderAndExtraColumns(t *testing.T) {
	content := `category,email,full_name,id,username,age,gender,country,followers,engagement,avg_likes,avg_comments,follower_growth_rate,notes
Travel,sam@example.com,Sam Lee,260,sam260,31,male,UK,90000,0.05,4000,200,0.01,likes trains
`
	path := writeFile(t, "reordered.csv", content)

	out, err := newTestService(t, createValidConfig(path)).Execute(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Sam Lee", out.Records[0].FullName)
	assert.Equal(t, "Travel", out.Records[0].Category)
	assert.Equal(t, int64(90000), out.Records[0].Followers)
}

func TestExecute_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	out, err := newTestService(t, createValidConfig(path)).Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotAccessible))
}

func TestExecute_InputPathOverridesConfig(t *testing.T) {
	path := writeFile(t, "other.csv", sampleCSV)

	out, err := newTestService(t, createValidConfig("does-not-exist.csv")).
		Execute(context.Background(), &Input{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, out.Path)
	assert.Len(t, out.Records, 3)
}

func TestExecute_InvalidFiles(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantDetails string
	}{
		{
			name:        "empty file",
			content:     "",
			wantDetails: "header row expected",
		},
		{
			name:        "missing columns",
			content:     "id,username,full_name,email,category\n1,a,A,a@example.com,Tech\n",
			wantDetails: "missing columns: age, gender, country, followers",
		},
		{
			name: "non numeric followers",
			content: "id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate\n" +
				"1,a,A,20,f,a@example.com,IN,Tech,lots,0.1,1,1,0.1\n",
			wantDetails: "row 2: column followers",
		},
		{
			name: "NaN engagement",
			content: "id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate\n" +
				"1,a,A,20,f,a@example.com,IN,Tech,100,NaN,1,1,0.1\n",
			wantDetails: "row 2: column engagement: \"NaN\" is not a finite number",
		},
		{
			name: "infinite growth rate",
			content: "id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate\n" +
				"1,a,A,20,f,a@example.com,IN,Tech,100,0.1,1,1,+Inf\n",
			wantDetails: "row 2: column follower_growth_rate",
		},
		{
			name: "infinite followers",
			content: "id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate\n" +
				"1,a,A,20,f,a@example.com,IN,Tech,Inf,0.1,1,1,0.1\n",
			wantDetails: "row 2: column followers",
		},
		{
			name: "short row",
			content: "id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate\n" +
				"1,a,A\n",
			wantDetails: "row 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)

			out, err := newTestService(t, createValidConfig(path)).Execute(context.Background(), &Input{})
			require.Error(t, err)
			assert.Nil(t, out)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeDataFileInvalid, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.wantDetails)
		})
	}
}

func TestExecute_EmptyNumericCellsReadAsZero(t *testing.T) {
	content := "id,username,full_name,age,gender,email,country,category,followers,engagement,avg_likes,avg_comments,follower_growth_rate\n" +
		"7,q,Quinn,,f,q@example.com,IN,Food,,,,,\n"
	path := writeFile(t, "sparse.csv", content)

	out, err := newTestService(t, createValidConfig(path)).Execute(context.Background(), &Input{})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, 0, out.Records[0].Age)
	assert.Equal(t, int64(0), out.Records[0].Followers)
	assert.Zero(t, out.Records[0].Engagement)
}

func TestExecute_EmptyCellsWithTabDelimiter(t *testing.T) {
	content := "id\tusername\tfull_name\tage\tgender\temail\tcountry\tcategory\tfollowers\tengagement\tavg_likes\tavg_comments\tfollower_growth_rate\n" +
		"1\tjo\tJo Park\t\tf\tjo@example.com\tKR\tFood\t1200\t\t240\t12\t0.03\n"
	path := writeFile(t, "sparse.tsv", content)
	cfg := createValidConfig(path)
	cfg.Delimiter = "\t"

	out, err := newTestService(t, cfg).Execute(context.Background(), &Input{})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Jo Park", out.Records[0].FullName)
	assert.Equal(t, 0, out.Records[0].Age)
	assert.Equal(t, "f", out.Records[0].Gender)
	assert.Zero(t, out.Records[0].Engagement)
	assert.Equal(t, int64(240), out.Records[0].AvgLikes)
}

func TestExecute_MaxRows(t *testing.T) {
	path := writeFile(t, "influencers.csv", sampleCSV)
	cfg := createValidConfig(path)
	cfg.MaxRows = 2

	out, err := newTestService(t, cfg).Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Len(t, out.Records, 2)
	assert.Equal(t, 3, out.TotalRows)
	assert.Equal(t, []string{"Technology"}, out.Categories)
}

func TestExecute_TabDelimiter(t *testing.T) {
	content := "id\tusername\tfull_name\tage\tgender\temail\tcountry\tcategory\tfollowers\tengagement\tavg_likes\tavg_comments\tfollower_growth_rate\n" +
		"1\tjo\tJo Park\t40\tf\tjo@example.com\tKR\tFood\t1200\t0.2\t240\t12\t0.03\n"
	path := writeFile(t, "influencers.tsv", content)
	cfg := createValidConfig(path)
	cfg.Delimiter = "\t"

	out, err := newTestService(t, cfg).Execute(context.Background(), &Input{})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Jo Park", out.Records[0].FullName)
	assert.Equal(t, 40, out.Records[0].Age)
}

func TestExecute_CancelledContext(t *testing.T) {
	path := writeFile(t, "influencers.csv", sampleCSV)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(t, createValidConfig(path)).Execute(ctx, &Input{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
