package api

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// ParseStatusPage extracts system status from the control host's HTML status
// page. The page renders each value as a .stat-row holding a .stat-label and a
// .stat-value, and running apps as .app-item elements.
func ParseStatusPage(r io.Reader) (*SystemStatus, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	if heading == "Error" {
		msg := strings.TrimSpace(doc.Find("p").First().Text())
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("control host reported: %s", msg)
	}

	status := &SystemStatus{
		Hostname: strings.TrimLeftFunc(heading, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}),
	}

	rows := 0
	doc.Find(".stat-row").Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSuffix(strings.TrimSpace(s.Find(".stat-label").Text()), ":")
		value := strings.TrimSpace(s.Find(".stat-value").Text())
		if field := statusField(status, label); field != nil {
			*field = value
			rows++
		}
	})

	doc.Find(".app-item").Each(func(i int, s *goquery.Selection) {
		if app := strings.TrimSpace(s.Text()); app != "" {
			status.RunningApps = append(status.RunningApps, app)
		}
	})

	if rows == 0 {
		return nil, errors.New("no status fields found on page")
	}
	status.Status = "ok"
	return status, nil
}

// statusField maps a page label to the field it fills
func statusField(s *SystemStatus, label string) *string {
	switch label {
	case "Total Memory":
		return &s.Memory.Total
	case "Used Memory":
		return &s.Memory.Used
	case "Available Memory":
		return &s.Memory.Available
	case "Total Storage":
		return &s.Storage.Total
	case "Used Storage":
		return &s.Storage.Used
	case "Available Storage":
		return &s.Storage.Available
	case "Usage":
		return &s.Storage.PercentUsed
	case "Battery Level":
		return &s.Battery.Percent
	case "Status":
		return &s.Battery.Status
	default:
		return nil
	}
}
