package captions

// SelectTrack picks the caption track to use for an optional preferred
// language code and returns its index in tracks.
//
// With a preference: the first exact code match wins, otherwise the first
// auto-generated track, otherwise the first track of any kind. With no
// preference: the first manually-authored track wins, otherwise the first
// auto-generated track, otherwise the first track. Manual tracks are only
// preferred when no language was requested at all; that asymmetry is
// deliberate and matches the historical lookup behavior.
func SelectTrack(tracks []Track, preferred string) (int, bool) {
	if len(tracks) == 0 {
		return 0, false
	}
	if preferred == "" {
		for i, t := range tracks {
			if !t.Generated() {
				return i, true
			}
		}
		return firstGeneratedOrAny(tracks), true
	}
	for i, t := range tracks {
		if t.LanguageCode == preferred {
			return i, true
		}
	}
	return firstGeneratedOrAny(tracks), true
}

// SelectGeneratedFirst applies the generated-first precedence regardless of
// whether a preference was given: exact match, else first auto-generated,
// else first of any kind. The page-scrape path uses this because the scraped
// listing marks auto-generated tracks explicitly and those are the reliable
// ones to fetch.
func SelectGeneratedFirst(tracks []Track, preferred string) (int, bool) {
	if len(tracks) == 0 {
		return 0, false
	}
	if preferred != "" {
		for i, t := range tracks {
			if t.LanguageCode == preferred {
				return i, true
			}
		}
	}
	return firstGeneratedOrAny(tracks), true
}

func firstGeneratedOrAny(tracks []Track) int {
	for i, t := range tracks {
		if t.Generated() {
			return i
		}
	}
	return 0
}
