// Package avatar builds display avatar URLs for users. The store never
// calls it; only renderers do.
package avatar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/domain"
)

const baseURL = "https://ui-avatars.com/api/"

// palette holds the background colours, indexed by the seed's rune sum.
var palette = [...]string{
	"F44336", "E91E63", "9C27B0", "673AB7",
	"3F51B5", "2196F3", "00BCD4", "009688",
	"4CAF50", "8BC34A", "CDDC39", "FFC107",
	"FF9800", "FF5722", "795548", "607D8B",
}

// Color returns the background colour for seed.
func Color(seed string) string {
	sum := 0
	for _, r := range seed {
		sum += int(r)
	}
	return palette[sum%len(palette)]
}

// URL returns the avatar for u, or "" when the user has no id or name.
// AvatarSeed picks the colour when set; otherwise the id does.
func URL(u *domain.User) string {
	if u == nil || u.Name == "" || u.ID == uuid.Nil {
		return ""
	}
	seed := u.AvatarSeed
	if seed == "" {
		seed = u.ID.String()
	}
	return Build(seed, u.Name)
}

// Build returns the avatar URL for a colour seed and display name.
func Build(seed, name string) string {
	if seed == "" || strings.TrimSpace(name) == "" {
		return ""
	}
	q := url.Values{}
	q.Set("name", strings.TrimSpace(name))
	q.Set("background", Color(seed))
	q.Set("color", "fff")
	q.Set("bold", "true")
	return fmt.Sprintf("%s?%s", baseURL, q.Encode())
}
