package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Profile is the metadata scraped from a user page header.
type Profile struct {
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Location  string    `json:"location"`
	Bio       string    `json:"bio"`
	Joined    time.Time `json:"joined"`
	Tweets    int       `json:"tweets"`
	Following int       `json:"following"`
	Followers int       `json:"followers"`
	Likes     int       `json:"likes"`
}

// joinDateLayout matches the title attribute of the join date element,
// e.g. "3:46 PM - 21 Mar 2006".
const joinDateLayout = "3:04 PM - 2 Jan 2006"

// Profile extracts user metadata from a profile page. Unlike Tweets, a
// page without the profile header is an error: the caller retries on it.
func (p *HTML) Profile(html string) (*Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parser: unreadable profile page: %w", err)
	}

	card := doc.Find("div.ProfileHeaderCard").First()
	if card.Length() == 0 {
		return nil, fmt.Errorf("parser: no profile header in page")
	}

	prof := &Profile{
		Fullname: strings.TrimSpace(card.Find("h1.ProfileHeaderCard-name a").Text()),
		Username: strings.TrimSpace(card.Find("h2.ProfileHeaderCard-screenname b").Text()),
		Location: strings.TrimSpace(card.Find("span.ProfileHeaderCard-locationText").Text()),
		Bio:      strings.TrimSpace(card.Find("p.ProfileHeaderCard-bio").Text()),
	}
	prof.Username = strings.TrimPrefix(prof.Username, "@")

	if title, ok := card.Find("span.ProfileHeaderCard-joinDateText").Attr("title"); ok {
		if joined, err := time.Parse(joinDateLayout, title); err == nil {
			prof.Joined = joined.UTC()
		}
	}

	nav := doc.Find("div.ProfileNav").First()
	prof.Tweets = navCount(nav, "tweets")
	prof.Following = navCount(nav, "following")
	prof.Followers = navCount(nav, "followers")
	prof.Likes = navCount(nav, "favorites")

	return prof, nil
}

// navCount reads one stat from the profile navigation bar.
func navCount(nav *goquery.Selection, stat string) int {
	raw, ok := nav.Find("li.ProfileNav-item--"+stat+" span.ProfileNav-value").Attr("data-count")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
