// Package domain models GHCN-M v3 station metadata and temperature records.
//
// # Data Source
//
// The Global Historical Climatology Network - Monthly (GHCN-M) version 3
// dataset is published by NOAA NCEI as a pair of fixed-width text files: a
// station inventory (".inv") and a temperature record file (".dat"). Both are
// encoded as ISO-8859-1, not UTF-8; station names carry accented characters
// that are corrupted by a UTF-8 decode.
//
// # Inventory format (".inv")
//
// One station per line, 107 characters wide, fields at fixed byte offsets
// (0-indexed, end-exclusive):
//
//	  0- 11  id                          11-character station identifier
//	 12- 20  latitude                    decimal degrees
//	 21- 30  longitude                   decimal degrees
//	 31- 37  elevation                   metres
//	 38- 68  name                        free text, trimmed
//	 69- 73  ground elevation            metres, optional
//	 73- 74  population class            U/S/R code
//	 75- 79  population size             thousands, optional
//	 79- 81  topography                  two-letter code
//	 81- 83  vegetation                  two-letter code
//	 83- 85  proximity to water          two-letter code
//	 85- 87  distance to ocean           km, optional
//	 87- 88  airport flag                A = airport station
//	 88- 90  distance to town            km, optional
//	 90-106  ground vegetation           free text, trimmed
//	106-107  secondary population class  A/B/C code
//
// Optional integer fields are blank (all spaces) when unreported; a blank is
// distinct from zero and is modeled as a nil pointer. Categorical codes are
// kept exactly as sliced, whitespace included, since their width is part of
// the code itself.
//
// A repeated station id keeps the later line's fields: the inventory is a
// last-write-wins mapping, and the upstream files are trusted not to abuse
// that. See [Inventory.Put].
//
// # Record format (".dat")
//
// One station-year per line: id at 0-11, year at 11-15, element code (e.g.
// "TAVG") at 15-19, then twelve 8-character month blocks starting at offset
// 19. The first 5 characters of each block are the value in hundredths of a
// degree Celsius; -9999 marks a missing month. The remaining 3 characters are
// quality flags, which this package ignores.
//
// Rows for one station are contiguous in the file. Years may be skipped; a
// skipped year contributes twelve missing months to the assembled series.
//
// # Scalpel
//
// After Rohde et al 2013, a station series can be cut wherever a run of
// missing months reaches a threshold. Each cut yields a child station carrying
// the parent's metadata under a mutated id: the rightmost occurrence of the
// ASCIIbetically least character of the parent id is replaced with 'a' for the
// oldest child, 'b' for the next, and so on. The newest segment keeps the
// parent id. See [Scalpel].
package domain
