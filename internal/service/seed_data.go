package service

import "github.com/njprem/tokyo_attractions_backend/internal/domain"

func catalogSeed() []domain.Attraction {
	return []domain.Attraction{
		{
			ID:          "1",
			Name:        "Senso-ji Temple",
			Description: "Tokyo's oldest temple, dating back to 628 AD. This ancient Buddhist temple features the iconic Thunder Gate and traditional shopping streets.",
			Category:    "temples",
			Location:    "Asakusa",
			Price:       0,
			Duration:    "1-2 hours",
			Image:       "https://images.unsplash.com/photo-1551036351-fb34e1bb59e3?w=800&h=600&fit=crop",
			Tags:        []string{"temple", "historic", "free", "cultural", "photography"},
		},
		{
			ID:          "2",
			Name:        "Tokyo Skytree",
			Description: "The tallest structure in Japan and second tallest in the world. Enjoy breathtaking 360-degree views of Tokyo from the observation decks.",
			Category:    "entertainment",
			Location:    "Sumida",
			Price:       2100,
			Duration:    "2-3 hours",
			Image:       "https://images.unsplash.com/photo-1513407030348-c983a97b98d8?w=800&h=600&fit=crop",
			Tags:        []string{"observation", "cityscape", "modern", "photography", "family-friendly"},
		},
		{
			ID:          "3",
			Name:        "Meiji Shrine",
			Description: "A peaceful oasis dedicated to Emperor Meiji and Empress Shoken. Walk through the forested grounds and experience traditional Japanese spirituality.",
			Category:    "temples",
			Location:    "Shibuya",
			Price:       0,
			Duration:    "1-2 hours",
			Image:       "https://images.unsplash.com/photo-1528164344705-47542687000d?w=800&h=600&fit=crop",
			Tags:        []string{"shrine", "nature", "free", "spiritual", "peaceful"},
		},
		{
			ID:          "4",
			Name:        "Tokyo National Museum",
			Description: "Japan's oldest and largest museum, housing over 110,000 cultural artifacts including samurai swords, ceramics, and traditional art.",
			Category:    "museums",
			Location:    "Ueno",
			Price:       1000,
			Duration:    "3-4 hours",
			Image:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=800&h=600&fit=crop",
			Tags:        []string{"art", "history", "culture", "educational", "indoor"},
		},
		{
			ID:          "5",
			Name:        "Shibuya Crossing",
			Description: "The world's busiest pedestrian crossing. Experience the organized chaos as thousands cross simultaneously in this iconic Tokyo spectacle.",
			Category:    "entertainment",
			Location:    "Shibuya",
			Price:       0,
			Duration:    "30 minutes",
			Image:       "https://images.unsplash.com/photo-1551036351-fb34e1bb59e3?w=800&h=600&fit=crop",
			Tags:        []string{"free", "iconic", "urban", "photography", "people-watching"},
		},
		{
			ID:          "6",
			Name:        "Ueno Park",
			Description: "A spacious public park home to several museums, a zoo, and beautiful cherry blossoms in spring. Perfect for picnics and strolls.",
			Category:    "parks",
			Location:    "Ueno",
			Price:       0,
			Duration:    "2-3 hours",
			Image:       "https://images.unsplash.com/photo-1522383225653-ed111181a951?w=800&h=600&fit=crop",
			Tags:        []string{"free", "nature", "family-friendly", "seasonal", "relaxing"},
		},
		{
			ID:          "7",
			Name:        "Tsukiji Outer Market",
			Description: "A bustling marketplace famous for fresh seafood, street food, and traditional Japanese culinary delights. A food lover's paradise!",
			Category:    "food",
			Location:    "Chuo",
			Price:       0,
			Duration:    "2-3 hours",
			Image:       "https://images.unsplash.com/photo-1559847260-dc66d52bef19?w=800&h=600&fit=crop",
			Tags:        []string{"food", "free-entry", "seafood", "street-food", "cultural"},
		},
		{
			ID:          "8",
			Name:        "Tokyo Disneyland",
			Description: "The magical world of Disney in Tokyo. Experience thrilling rides, enchanting shows, and meet your favorite Disney characters.",
			Category:    "entertainment",
			Location:    "Maihama",
			Price:       8200,
			Duration:    "Full day",
			Image:       "https://images.unsplash.com/photo-1590144662036-33bf0ebd2c6d?w=800&h=600&fit=crop",
			Tags:        []string{"theme-park", "family-friendly", "entertainment", "disney", "magical"},
		},
		{
			ID:          "9",
			Name:        "Imperial Palace East Garden",
			Description: "The former site of Edo Castle, now beautiful gardens offering a glimpse into Japan's feudal history amidst modern Tokyo.",
			Category:    "parks",
			Location:    "Chiyoda",
			Price:       0,
			Duration:    "1-2 hours",
			Image:       "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=800&h=600&fit=crop",
			Tags:        []string{"free", "historic", "gardens", "nature", "photography"},
		},
		{
			ID:          "10",
			Name:        "Ginza Shopping District",
			Description: "Tokyo's premier shopping area featuring luxury brands, department stores, and exclusive boutiques. A paradise for fashion enthusiasts.",
			Category:    "shopping",
			Location:    "Ginza",
			Price:       0,
			Duration:    "3-4 hours",
			Image:       "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=800&h=600&fit=crop",
			Tags:        []string{"free-entry", "shopping", "luxury", "fashion", "urban"},
		},
		{
			ID:          "11",
			Name:        "Akihabara Electric Town",
			Description: "The center of anime, manga, and electronics culture. Explore multi-story arcades, themed cafes, and cutting-edge technology stores.",
			Category:    "shopping",
			Location:    "Akihabara",
			Price:       0,
			Duration:    "2-3 hours",
			Image:       "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=800&h=600&fit=crop",
			Tags:        []string{"free-entry", "anime", "electronics", "gaming", "pop-culture"},
		},
		{
			ID:          "12",
			Name:        "TeamLab Borderless",
			Description: "An immersive digital art museum where boundaries between art and visitor dissolve. Interactive projections create a magical experience.",
			Category:    "entertainment",
			Location:    "Odaiba",
			Price:       3200,
			Duration:    "2-3 hours",
			Image:       "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=800&h=600&fit=crop",
			Tags:        []string{"digital-art", "immersive", "modern", "photography", "family-friendly"},
		},
	}
}

func sampleUsers() []domain.User {
	return []domain.User{
		{ID: "user1", Name: "Sarah Johnson", Email: "sarah@example.com"},
		{ID: "user2", Name: "Mike Chen", Email: "mike@example.com"},
		{ID: "user3", Name: "Emily Davis", Email: "emily@example.com"},
		{ID: "user4", Name: "Alex Kim", Email: "alex@example.com"},
		{ID: "user5", Name: "Maria Rodriguez", Email: "maria@example.com"},
	}
}

func sampleReviews() []domain.Review {
	return []domain.Review{
		{
			Rating:       5,
			Comment:      "Absolutely breathtaking experience! The view from the top is incredible and the staff was very helpful. I went during sunset and it was magical. Highly recommend getting the fast pass to skip lines.",
			UserID:       "user1",
			AttractionID: "1",
			Verified:     true,
		},
		{
			Rating:       4,
			Comment:      "Beautiful temple with lots of history. The surrounding area has great traditional shops and street food. It can get very crowded on weekends, so try to visit early morning.",
			UserID:       "user2",
			AttractionID: "1",
		},
		{
			Rating:       5,
			Comment:      "The most impressive structure I've ever seen! The observation decks offer panoramic views of Tokyo. The digital art installations inside are also amazing. Worth every yen!",
			UserID:       "user3",
			AttractionID: "2",
			Verified:     true,
		},
		{
			Rating:       3,
			Comment:      "Great views but very expensive. The lines can be incredibly long, especially during peak tourist season. The food options at the top are limited and overpriced.",
			UserID:       "user4",
			AttractionID: "2",
		},
		{
			Rating:       5,
			Comment:      "A peaceful oasis in the middle of bustling Tokyo. The walk through the forest to the shrine is incredibly serene. Don't miss the weekend markets and festivals!",
			UserID:       "user5",
			AttractionID: "3",
			Verified:     true,
		},
	}
}
