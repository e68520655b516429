package itinerary

func dest(id, city, state string, lat, lon float64) Stop {
	return Stop{ID: id, Name: city, City: city, State: state, Latitude: lat, Longitude: lon, Category: CategoryDestination}
}

func poi(id, name, city, state string, lat, lon float64, cat StopCategory) Stop {
	return Stop{ID: id, Name: name, City: city, State: state, Latitude: lat, Longitude: lon, Category: cat}
}

// route66Stops is a trimmed Route 66 dataset, Chicago to Santa Monica.
func route66Stops() []Stop {
	return []Stop{
		dest("chicago", "Chicago", "IL", 41.8781, -87.6298),
		dest("springfield-il", "Springfield", "IL", 39.7817, -89.6501),
		dest("st-louis", "St. Louis", "MO", 38.6270, -90.1994),
		dest("rolla", "Rolla", "MO", 37.9514, -91.7713),
		dest("springfield-mo", "Springfield", "MO", 37.2090, -93.2923),
		dest("joplin", "Joplin", "MO", 37.0842, -94.5133),
		dest("tulsa", "Tulsa", "OK", 36.1540, -95.9928),
		dest("oklahoma-city", "Oklahoma City", "OK", 35.4676, -97.5164),
		dest("elk-city", "Elk City", "OK", 35.4120, -99.4043),
		dest("amarillo", "Amarillo", "TX", 35.2220, -101.8313),
		dest("tucumcari", "Tucumcari", "NM", 35.1717, -103.7250),
		dest("albuquerque", "Albuquerque", "NM", 35.0844, -106.6504),
		dest("gallup", "Gallup", "NM", 35.5281, -108.7426),
		dest("holbrook", "Holbrook", "AZ", 34.9022, -110.1582),
		dest("flagstaff", "Flagstaff", "AZ", 35.1983, -111.6513),
		dest("kingman", "Kingman", "AZ", 35.1894, -114.0530),
		dest("needles", "Needles", "CA", 34.8481, -114.6141),
		dest("barstow", "Barstow", "CA", 34.8958, -117.0173),
		dest("santa-monica", "Santa Monica", "CA", 34.0195, -118.4912),

		poi("buckingham-fountain", "Buckingham Fountain", "Chicago", "IL", 41.8758, -87.6189, CategoryAttraction),
		poi("gemini-giant", "Gemini Giant", "Wilmington", "IL", 41.3078, -88.1467, CategoryWaypoint),
		poi("cozy-dog", "Cozy Dog Drive In", "Springfield", "IL", 39.7684, -89.6533, CategoryHiddenGem),
		poi("gateway-arch", "Gateway Arch", "St. Louis", "MO", 38.6247, -90.1848, CategoryAttraction),
		poi("meramec-caverns", "Meramec Caverns", "Stanton", "MO", 38.2431, -91.0963, CategoryAttraction),
		poi("galena", "Galena Mining Town", "Galena", "KS", 37.0759, -94.6394, CategoryWaypoint),
		poi("blue-whale", "Blue Whale of Catoosa", "Catoosa", "OK", 36.1953, -95.7345, CategoryHiddenGem),
		poi("route66-museum-ok", "Oklahoma Route 66 Museum", "Clinton", "OK", 35.5156, -98.9673, CategoryAttraction),
		poi("u-drop-inn", "U-Drop Inn", "Shamrock", "TX", 35.2187, -100.2493, CategoryWaypoint),
		poi("cadillac-ranch", "Cadillac Ranch", "Amarillo", "TX", 35.1872, -101.9871, CategoryAttraction),
		poi("blue-swallow", "Blue Swallow Motel", "Tucumcari", "NM", 35.1713, -103.7200, CategoryHiddenGem),
		poi("petrified-forest", "Petrified Forest", "Holbrook", "AZ", 34.9100, -109.8068, CategoryAttraction),
		poi("wigwam-motel", "Wigwam Motel", "Holbrook", "AZ", 34.9066, -110.1640, CategoryHiddenGem),
		poi("standin-on-the-corner", "Standin' on the Corner", "Winslow", "AZ", 35.0242, -110.6974, CategoryWaypoint),
		poi("roys-motel", "Roy's Motel and Cafe", "Amboy", "CA", 34.5583, -115.7447, CategoryWaypoint),
		poi("santa-monica-pier", "Santa Monica Pier", "Santa Monica", "CA", 34.0101, -118.4962, CategoryAttraction),
	}
}

// evenStops places destinations along the equator so every leg has the same length.
func evenStops(legs int, degreesPerLeg float64) []Stop {
	stops := make([]Stop, 0, legs+2)
	for i := 0; i <= legs; i++ {
		id := "town-" + string(rune('a'+i))
		stops = append(stops, dest(id, "Town "+string(rune('A'+i)), "IL", 0, float64(i)*degreesPerLeg))
	}
	stops = append(stops, poi("museum", "Town Museum", "Town B", "IL", 0, degreesPerLeg, CategoryAttraction))
	return stops
}

func stopByID(stops []Stop, id string) Stop {
	for _, s := range stops {
		if s.ID == id {
			return s
		}
	}
	panic("fixture stop not found: " + id)
}

func segmentsWithHours(hours ...float64) []DailySegment {
	segments := make([]DailySegment, len(hours))
	for i, h := range hours {
		segments[i] = DailySegment{
			Day:            i + 1,
			StartCity:      "Start",
			EndCity:        "End",
			DistanceMiles:  h * AverageSpeedMPH,
			DriveTimeHours: h,
			Category:       Categorize(h),
		}
	}
	return segments
}
