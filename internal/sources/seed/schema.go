package seed

// Entry is one starter bookmark.
type Entry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Category is one starter category.
type Category struct {
	Name      string  `yaml:"name"`
	Emoji     string  `yaml:"emoji"`
	Bookmarks []Entry `yaml:"bookmarks"`
}

// File is the native seed format:
//
//	categories:
//	  - name: Dev
//	    emoji: "💻"
//	    bookmarks:
//	      - name: GitHub
//	        url: github.com
type File struct {
	Categories []Category `yaml:"categories"`
}

// HomepageEntry is a bookmark of a Homepage bookmarks.yaml.
type HomepageEntry struct {
	Icon string `yaml:"icon"`
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
}

// HomepageBookmarks is the Homepage bookmarks.yaml layout:
// - Category: [ - Bookmark Name: [{ icon, abbr, href }] ]
type HomepageBookmarks []map[string][]map[string][]HomepageEntry

// toFile converts a Homepage file to the native layout, keeping order.
func (h HomepageBookmarks) toFile() File {
	var f File
	for _, group := range h {
		for categoryName, list := range group {
			c := Category{Name: categoryName}
			for _, item := range list {
				for bookmarkName, entries := range item {
					if len(entries) == 0 || entries[0].Href == "" {
						continue
					}
					c.Bookmarks = append(c.Bookmarks, Entry{Name: bookmarkName, URL: entries[0].Href})
				}
			}
			f.Categories = append(f.Categories, c)
		}
	}
	return f
}
