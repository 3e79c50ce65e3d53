package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultSheetsBaseURL = "https://sheets.googleapis.com"
	DefaultSheetRange    = "Leads!A:L"
)

// SheetsClient appends rows to one range of one spreadsheet
type SheetsClient struct {
	baseURL       string
	spreadsheetID string
	sheetRange    string
	httpClient    *http.Client
}

func NewSheetsClient(baseURL, spreadsheetID, sheetRange string, httpClient *http.Client) *SheetsClient {
	if baseURL == "" {
		baseURL = DefaultSheetsBaseURL
	}
	if sheetRange == "" {
		sheetRange = DefaultSheetRange
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &SheetsClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
		httpClient:    httpClient,
	}
}

type valueRange struct {
	Values [][]string `json:"values"`
}

// Append adds row below the last row of the configured range
func (c *SheetsClient) Append(ctx context.Context, accessToken string, row []string) error {

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.sheetRange))

	query := url.Values{}
	query.Set("valueInputOption", "USER_ENTERED")
	query.Set("insertDataOption", "INSERT_ROWS")

	body, err := json.Marshal(valueRange{Values: [][]string{row}})
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create append request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("append failed with status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
