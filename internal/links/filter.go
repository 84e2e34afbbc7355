package links

import "github.com/ytget/ig-downloader/internal/model"

// PostPrefix marks a single-item post link. Stories, reels and other
// link types do not carry it.
const PostPrefix = "/p/"

// FilterPosts returns the post links of batch in their original order and
// the number of links it dropped. The input slice is not modified.
func FilterPosts(batch []model.Link) ([]model.Link, int) {
	kept := make([]model.Link, 0, len(batch))
	for _, link := range batch {
		if link.HasPrefix(PostPrefix) {
			kept = append(kept, link)
		}
	}
	return kept, len(batch) - len(kept)
}
