package cli

import (
	"fmt"
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tickermind/tickermind/internal/api"
	"github.com/tickermind/tickermind/internal/format"
)

// tickerValidator rejects anything that is not 1-5 uppercase letters after
// normalization.
func tickerValidator(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("invalid input")
	}
	if !format.IsValidTicker(format.NormalizeTicker(str)) {
		return fmt.Errorf("ticker must be 1-5 letters (e.g. AAPL)")
	}
	return nil
}

// PromptForTicker asks for a stock ticker symbol.
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter a stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "1-5 uppercase letters",
	}
	if err := survey.AskOne(prompt, &ticker, survey.WithValidator(tickerValidator)); err != nil {
		return "", err
	}
	return format.NormalizeTicker(ticker), nil
}

// PromptForSuggestion lets the user pick an example query from the
// backend's categorized suggestions.
func PromptForSuggestion(s *api.SuggestionsResponse) (string, error) {
	categories := make([]string, 0, len(s.Categories))
	for c := range s.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	if len(categories) == 0 {
		return "", fmt.Errorf("no suggestions available")
	}

	var category string
	if err := survey.AskOne(&survey.Select{
		Message: "Suggestion category:",
		Options: categories,
	}, &category); err != nil {
		return "", err
	}

	var query string
	if err := survey.AskOne(&survey.Select{
		Message: "Question:",
		Options: s.Categories[category],
	}, &query); err != nil {
		return "", err
	}
	return query, nil
}

// ConfirmClear asks before wiping the conversation.
func ConfirmClear() (bool, error) {
	confirmed := false
	err := survey.AskOne(&survey.Confirm{
		Message: "Clear the whole conversation?",
		Default: false,
	}, &confirmed)
	return confirmed, err
}
