package shellcache

// Manifest is the versioned list of shell resources. Changing Paths without
// bumping Version leaves existing buckets as they are.
type Manifest struct {
	Prefix  string
	Version string
	Paths   []string
}

// BucketName is the cache bucket that holds this manifest's resources.
func (m Manifest) BucketName() string {
	return m.Prefix + "-" + m.Version
}

// Contains reports whether path is a shell resource.
func (m Manifest) Contains(path string) bool {
	for _, p := range m.Paths {
		if p == path {
			return true
		}
	}
	return false
}
