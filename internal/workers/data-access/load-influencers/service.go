package loadinfluencers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"influencer-outreach/internal/common/errors"
	"influencer-outreach/internal/common/logger"
	"influencer-outreach/internal/common/metrics"
	"influencer-outreach/internal/models"
)

type Service struct {
	config *Config
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
	}
}

// Execute reads the influencer table. A missing file yields a
// FILE_NOT_ACCESSIBLE error and no records.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	path := s.config.Path
	if input != nil && input.Path != "" {
		path = input.Path
	}

	s.logger.Info("Loading influencer data", map[string]interface{}{
		"path":      path,
		"delimiter": s.config.Delimiter,
		"maxRows":   s.config.MaxRows,
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before loading data: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		s.logger.Error("Influencer data file not accessible", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
			"hint":  fmt.Sprintf("create %s with columns: %s", path, strings.Join(models.InfluencerColumns, ",")),
		})
		return nil, errors.NewFileNotAccessibleError(path, err)
	}
	defer f.Close()

	records, total, err := s.read(f, path)
	if err != nil {
		return nil, err
	}

	set := models.InfluencerSet(records).Limit(s.config.MaxRows)
	metrics.RecordsLoaded.Set(float64(len(set)))

	s.logger.Info("Influencer data loaded", map[string]interface{}{
		"path":      path,
		"records":   len(set),
		"totalRows": total,
	})

	return &Output{
		Path:       path,
		Records:    set,
		Categories: set.Categories(),
		TotalRows:  total,
	}, nil
}

func (s *Service) read(r io.Reader, path string) ([]models.InfluencerRecord, int, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.config.delimiterRune()

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, errors.NewDataFileInvalidError(path, "file is empty, header row expected")
	}
	if err != nil {
		return nil, 0, errors.NewDataFileInvalidError(path, fmt.Sprintf("read header: %v", err))
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, 0, errors.NewDataFileInvalidError(path, err.Error())
	}

	var records []models.InfluencerRecord
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, 0, errors.NewDataFileInvalidError(path, fmt.Sprintf("row %d: %v", row, err))
		}

		rec, err := parseRecord(fields, index)
		if err != nil {
			return nil, 0, errors.NewDataFileInvalidError(path, fmt.Sprintf("row %d: %v", row, err))
		}
		records = append(records, rec)
	}

	return records, len(records), nil
}

// columnIndex maps every declared column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range models.InfluencerColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRecord(fields []string, index map[string]int) (models.InfluencerRecord, error) {
	get := func(col string) string {
		return strings.TrimSpace(fields[index[col]])
	}

	var rec models.InfluencerRecord
	var err error

	rec.Username = get(models.ColumnUsername)
	rec.FullName = get(models.ColumnFullName)
	rec.Gender = get(models.ColumnGender)
	rec.Email = get(models.ColumnEmail)
	rec.Country = get(models.ColumnCountry)
	rec.Category = get(models.ColumnCategory)

	if rec.ID, err = parseInt(get(models.ColumnID), models.ColumnID); err != nil {
		return rec, err
	}
	if rec.Age, err = parseInt(get(models.ColumnAge), models.ColumnAge); err != nil {
		return rec, err
	}
	if rec.Followers, err = parseInt64(get(models.ColumnFollowers), models.ColumnFollowers); err != nil {
		return rec, err
	}
	if rec.Engagement, err = parseFloat(get(models.ColumnEngagement), models.ColumnEngagement); err != nil {
		return rec, err
	}
	if rec.AvgLikes, err = parseInt64(get(models.ColumnAvgLikes), models.ColumnAvgLikes); err != nil {
		return rec, err
	}
	if rec.AvgComments, err = parseInt64(get(models.ColumnAvgComments), models.ColumnAvgComments); err != nil {
		return rec, err
	}
	if rec.FollowerGrowthRate, err = parseFloat(get(models.ColumnFollowerGrowthRate), models.ColumnFollowerGrowthRate); err != nil {
		return rec, err
	}
	return rec, nil
}

func parseInt(v, col string) (int, error) {
	n, err := parseInt64(v, col)
	return int(n), err
}

// parseInt64 also accepts integral floats such as "73418.0".
func parseInt64(v, col string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != float64(int64(f)) {
		return 0, fmt.Errorf("column %s: %q is not an integer", col, v)
	}
	return int64(f), nil
}

func parseFloat(v, col string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", col, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %s: %q is not a finite number", col, v)
	}
	return f, nil
}
