package handler

// page returns the page echoed in list metadata
func page(requested int) int {
	if requested < 1 {
		return 1
	}
	return requested
}

// pageSize returns the page size echoed in list metadata, matching the service default
func pageSize(requested, fallback int) int {
	if requested < 1 {
		return fallback
	}
	return requested
}
