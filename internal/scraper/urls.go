package scraper

import (
	"fmt"
	"net/url"
)

// Endpoint templates for the two page families. First-page requests hit
// the HTML endpoints; continuation requests hit the JSON timeline
// endpoints and carry the max_position cursor.
const (
	searchInitPath = "/search?f=tweets&vertical=default&q=%s&l=%s"

	searchReloadPath = "/i/search/timeline?f=tweets&vertical=default" +
		"&include_available_features=1&include_entities=1" +
		"&reset_error_state=false&src=typd&max_position=%s&q=%s&l=%s"

	userInitPath = "/%s"

	userReloadPath = "/i/profiles/show/%s/timeline/tweets" +
		"?include_available_features=1&include_entities=1" +
		"&max_position=%s&reset_error_state=false"
)

// pageURL selects the endpoint for (fromUser, pos) and renders a
// ready-to-fetch URL.
func pageURL(base, query, lang, pos string, fromUser bool) string {
	if fromUser {
		return userPageURL(base, query, pos)
	}
	return searchPageURL(base, query, lang, pos)
}

func searchPageURL(base, query, lang, pos string) string {
	q := url.QueryEscape(query)
	if pos != "" {
		return base + fmt.Sprintf(searchReloadPath, url.QueryEscape(pos), q, url.QueryEscape(lang))
	}
	return base + fmt.Sprintf(searchInitPath, q, url.QueryEscape(lang))
}

func userPageURL(base, user, pos string) string {
	u := url.PathEscape(user)
	if pos != "" {
		return base + fmt.Sprintf(userReloadPath, u, url.QueryEscape(pos))
	}
	return base + fmt.Sprintf(userInitPath, u)
}
