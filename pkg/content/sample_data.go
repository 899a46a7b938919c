package content

// SampleEvents returns the built-in event records shown on the events pages.
func SampleEvents() []Event {
	return []Event{
		{
			ID:       1,
			Date:     "2025-12-05",
			Location: "Lomé",
			Translations: map[string]EventText{
				"fr": {
					Title:       "Atelier Python débutant",
					Description: "Introduction à Python pour les nouveaux développeurs.",
				},
				"en": {
					Title:       "Beginner Python workshop",
					Description: "Introduction to Python for new developers.",
				},
			},
		},
		{
			ID:       3,
			Date:     "2025-07-20  to 2025-08-22",
			Location: "Lomé",
			Translations: map[string]EventText{
				"fr": {
					Title:       "Challenge 30 jours de code Python",
					Description: "Challenge d'introduction à Python pour les nouveaux développeurs.",
				},
				"en": {
					Title:       "30 Days of Python Code Challenge",
					Description: "Introductory Python challenge for new developers.",
				},
			},
		},
		{
			ID:       2,
			Date:     "2026-01-20",
			Location: "Lomé",
			Translations: map[string]EventText{
				"fr": {
					Title:       "Data Science avec Python",
					Description: "Atelier sur les bases de la data science.",
				},
				"en": {
					Title:       "Data Science with Python",
					Description: "Workshop on the basics of data science.",
				},
			},
		},
	}
}

// SampleNews returns the built-in news records shown on the news pages.
func SampleNews() []NewsItem {
	return []NewsItem{
		{
			ID:    1,
			Date:  "2025-11-01",
			Image: "https://res.cloudinary.com/dvg7vky5o/image/upload/v1763440928/20251117_200618_tsfc73.jpg",
			Translations: map[string]NewsText{
				"fr": {
					Title:   "Lancement d'un nouvel atelier Python",
					Excerpt: "Nous organisons un atelier sur les bases de Python.",
					Body: "Rejoignez-nous pour un atelier d'introduction à Python, destiné " +
						"aux débutants. Détails, date et inscription seront " +
						"communiqués prochainement.",
				},
				"en": {
					Title:   "Launching a new Python workshop",
					Excerpt: "We are organizing a beginner-friendly Python workshop.",
					Body: "Join us for an introductory Python workshop for newcomers. " +
						"Details, date, and registration will be shared soon.",
				},
			},
		},
		{
			ID:    2,
			Date:  "2025-09-15",
			Image: "https://res.cloudinary.com/dvg7vky5o/image/upload/v1763440928/20251117_200618_tsfc73.jpg",
			Translations: map[string]NewsText{
				"fr": {
					Title:   "Rencontre communautaire à Lomé",
					Excerpt: "Retour sur la rencontre mensuelle.",
					Body: "Compte-rendu de notre dernière rencontre communautaire à Lomé " +
						"avec les ressources partagées et les annonces.",
				},
				"en": {
					Title:   "Community meetup in Lomé",
					Excerpt: "Recap of the monthly meetup.",
					Body: "A recap of our latest community meetup in Lomé with shared " +
						"resources and announcements.",
				},
			},
		},
		{
			ID:    3,
			Date:  "2025-08-23",
			Image: "https://res.cloudinary.com/dvg7vky5o/image/upload/v1747588996/Group_6_r7n6id.png",
			Translations: map[string]NewsText{
				"fr": {
					Title:   "Rapport de la PyCon Togo 2025",
					Excerpt: "Retour sur la PyCon Togo 2025.",
					Body: "Compte-rendu de la PyCon Togo 2025 avec les ressources " +
						"partagées et les annonces. " +
						"lire plus: https://report.pytogo.org/rapport-de-la-pycon-togo-2025",
				},
				"en": {
					Title:   "PyCon Togo 2025 Report",
					Excerpt: "Recap of the PyCon Togo 2025.",
					Body: "A recap of the PyCon Togo 2025 with shared resources and " +
						"announcements. " +
						"read more: https://report.pytogo.org",
				},
			},
		},
	}
}
