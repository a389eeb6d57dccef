package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"go-insight-engine/internal/model"
	"go-insight-engine/pkg/utils"
)

// Load reads a dataset from a local file or an HTTP URL. The format is
// taken from the path extension: .csv parses as CSV with a header row,
// anything else as a JSON array of objects. Fields are inferred from the
// rows unless the caller supplies descriptors.
func Load(ctx context.Context, pathOrURL string, fields []model.FieldDescriptor) (model.Dataset, error) {
	reader, closer, err := open(ctx, pathOrURL)
	if err != nil {
		return model.Dataset{}, err
	}
	defer closer()

	var rows []model.Row
	if strings.HasSuffix(strings.ToLower(pathOrURL), ".csv") {
		rows, err = readCSV(reader)
	} else {
		rows, err = readJSON(reader)
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("load %s: %w", pathOrURL, err)
	}

	if len(fields) == 0 {
		fields = InferFields(rows)
	}
	return model.Dataset{Rows: rows, Fields: fields}, nil
}

func open(ctx context.Context, pathOrURL string) (io.Reader, func(), error) {
	if strings.HasPrefix(pathOrURL, "http") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch dataset: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset file: %w", err)
	}
	return file, func() { file.Close() }, nil
}

func readCSV(r io.Reader) ([]model.Row, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		headers[i] = strings.ReplaceAll(h, `"`, "")
	}

	var rows []model.Row
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		row := make(model.Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = utils.ParseValue(record[i])
			}
		}
		rows = append(rows, row)
	}
}

func readJSON(r io.Reader) ([]model.Row, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read JSON body: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	switch data := raw.(type) {
	case []interface{}:
		rows := make([]model.Row, 0, len(data))
		for _, item := range data {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, model.Row(m))
			}
		}
		return rows, nil
	case map[string]interface{}:
		return []model.Row{model.Row(data)}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON structure")
	}
}

// InferFields derives field descriptors from row contents. A field whose
// present values are all numeric is numerical; all date-like strings,
// temporal; anything else, categorical. Descriptors come out in sorted ID
// order so inference is deterministic.
func InferFields(rows []model.Row) []model.FieldDescriptor {
	type tally struct {
		seen, numeric, temporal int
	}
	tallies := make(map[string]*tally)

	for _, row := range rows {
		for key, value := range row {
			t := tallies[key]
			if t == nil {
				t = &tally{}
				tallies[key] = t
			}
			if value == nil {
				continue
			}
			t.seen++
			if _, ok := utils.ToFloat(value); ok {
				t.numeric++
				continue
			}
			if s, ok := value.(string); ok {
				if _, dateOK := utils.ToTimestamp(s); dateOK {
					t.temporal++
				}
			}
		}
	}

	ids := make([]string, 0, len(tallies))
	for id := range tallies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fields := make([]model.FieldDescriptor, 0, len(ids))
	for _, id := range ids {
		t := tallies[id]
		fieldType := model.FieldCategorical
		switch {
		case t.seen > 0 && t.numeric == t.seen:
			fieldType = model.FieldNumerical
		case t.seen > 0 && t.temporal == t.seen:
			fieldType = model.FieldTemporal
		}
		fields = append(fields, model.FieldDescriptor{ID: id, Name: id, Type: fieldType})
	}
	return fields
}
