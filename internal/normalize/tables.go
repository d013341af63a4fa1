package normalize

import (
	"maps"
	"slices"
)

// months maps the lower-cased first three letters of a month name to its number.
var months = map[string]int{
	"jan": 1,
	"feb": 2,
	"mar": 3,
	"apr": 4,
	"may": 5,
	"jun": 6,
	"jul": 7,
	"aug": 8,
	"sep": 9,
	"oct": 10,
	"nov": 11,
	"dec": 12,
}

// journals maps ADS journal macros (after brace and backslash removal) to
// full journal names. Keys are case-sensitive.
var journals = map[string]string{
	"aj":       "Astronomical Journal",
	"actaa":    "Acta Astronomica",
	"araa":     "Annual Review of Astron and Astrophys",
	"apj":      "Astrophysical Journal",
	"apjl":     "Astrophysical Journal Letters",
	"apjs":     "Astrophysical Journal Supplement",
	"ao":       "Applied Optics",
	"apss":     "Astrophysics and Space Science",
	"aap":      "Astronomy and Astrophysics",
	"aapr":     "Astronomy and Astrophysics Reviews",
	"aaps":     "Astronomy and Astrophysics Supplement",
	"azh":      "Astronomicheskii Zhurnal",
	"baas":     "Bulletin of the AAS",
	"caa":      "Chinese Astronomy and Astrophysics",
	"cjaa":     "Chinese Journal of Astronomy and Astrophysics",
	"icarus":   "Icarus",
	"jcap":     "Journal of Cosmology and Astroparticle Physics",
	"jrasc":    "Journal of the RAS of Canada",
	"memras":   "Memoirs of the RAS",
	"mnras":    "Monthly Notices of the RAS",
	"na":       "New Astronomy",
	"nar":      "New Astronomy Review",
	"pra":      "Physical Review A: General Physics",
	"prb":      "Physical Review B: Solid State",
	"prc":      "Physical Review C",
	"prd":      "Physical Review D",
	"pre":      "Physical Review E",
	"prl":      "Physical Review Letters",
	"pasa":     "Publications of the Astron. Soc. of Australia",
	"pasp":     "Publications of the ASP",
	"pasj":     "Publications of the Astronomical Society of Japan",
	"rmxaa":    "Revista Mexicana de Astronomia y Astrofisica",
	"qjras":    "Quarterly Journal of the RAS",
	"skytel":   "Sky and Telescope",
	"solphys":  "Solar Physics",
	"sovast":   "Soviet Astronomy",
	"ssr":      "Space Science Reviews",
	"zap":      "Zeitschrift fuer Astrophysik",
	"nat":      "Nature",
	"iaucirc":  "IAU Cirulars",
	"aplett":   "Astrophysics Letters",
	"apspr":    "Astrophysics Space Physics Research",
	"bain":     "Bulletin Astronomical Institute of the Netherlands",
	"fcp":      "Fundamental Cosmic Physics",
	"gca":      "Geochimica Cosmochimica Acta",
	"grl":      "Geophysics Research Letters",
	"jcp":      "Journal of Chemical Physics",
	"jgr":      "Journal of Geophysics Research",
	"jqsrt":    "Journal of Quantitiative Spectroscopy and Radiative Transfer",
	"memsai":   "Mem. Societa Astronomica Italiana",
	"nphysa":   "Nuclear Physics A",
	"physrep":  "Physics Reports",
	"physscr":  "Physica Scripta",
	"planss":   "Planetary Space Science",
	"procspie": "Proceedings of the SPIE",
}

// JournalName returns the full name for a journal abbreviation.
func JournalName(abbrev string) (string, bool) {
	name, ok := journals[abbrev]
	return name, ok
}

// JournalAbbreviations returns every known abbreviation in sorted order.
func JournalAbbreviations() []string {
	return slices.Sorted(maps.Keys(journals))
}
