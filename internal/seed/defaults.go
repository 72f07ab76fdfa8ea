// Package seed holds the hardcoded record sets used the first time a
// collection's storage key is empty.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/slayscreens/showdesk/internal/models"
)

func Movies() []models.Movie {
	return []models.Movie{
		{
			ID:          1,
			Title:       "Venom: The Last Dance",
			Genre:       "Action/Sci-Fi",
			Duration:    "1h 50m",
			Rating:      6.8,
			Price:       350,
			Poster:      "https://image.tmdb.org/t/p/w500/8UlWHLMpgZm9bx6QYh0NFoq67TZ.jpg",
			Backdrop:    "https://image.tmdb.org/t/p/original/3V4kLQg0kSqPLctI5ziYWabAZYF.jpg",
			Director:    "Kelly Marcel",
			Description: "Eddie and Venom are on the run, hunted by both of their worlds.",
			Status:      models.StatusActive,
			ReleaseDate: "2024-10-25",
			Cast: []models.CastMember{
				{Name: "Tom Hardy", Role: "Eddie Brock", Image: "https://ui-avatars.com/api/?name=Tom+Hardy&background=b026ff&color=fff"},
			},
		},
		{
			ID:          2,
			Title:       "Pathaan",
			Genre:       "Action/Thriller",
			Duration:    "2h 26m",
			Rating:      7.2,
			Price:       400,
			Poster:      "https://picsum.photos/seed/2/500/750",
			Director:    "Siddharth Anand",
			Description: "An exiled RAW agent partners with a fellow spy to stop a rogue mercenary group.",
			Status:      models.StatusActive,
			ReleaseDate: "2023-01-25",
		},
		{
			ID:          3,
			Title:       "RRR",
			Genre:       "Action/Drama",
			Duration:    "3h 07m",
			Rating:      7.9,
			Price:       300,
			Poster:      "https://picsum.photos/seed/3/500/750",
			Director:    "S. S. Rajamouli",
			Description: "A fictitious tale of two legendary revolutionaries and their journey away from home.",
			Status:      models.StatusActive,
			ReleaseDate: "2022-03-25",
		},
		{
			ID:          4,
			Title:       "Dune: Part Two",
			Genre:       "Sci-Fi",
			Duration:    "2h 46m",
			Rating:      8.5,
			Price:       450,
			Poster:      "https://picsum.photos/seed/4/500/750",
			Director:    "Denis Villeneuve",
			Description: "Paul Atreides unites with Chani and the Fremen while seeking revenge against the conspirators who destroyed his family.",
			Status:      models.StatusComingSoon,
			ReleaseDate: "2024-03-01",
		},
	}
}

func SportMatches() []models.SportMatch {
	return []models.SportMatch{
		{
			ID: 1, Team1: "Mumbai Indians", Team2: "Chennai Super Kings",
			SportType: "Cricket", League: "IPL",
			Date: "2024-12-20", Time: "19:30",
			Venue: "Wankhede Stadium", Price: 1500, Status: models.StatusActive,
		},
		{
			ID: 2, Team1: "India", Team2: "Australia",
			SportType: "Cricket", League: "Test Match",
			Date: "2024-12-26", Time: "09:30",
			Venue: "MCG, Melbourne", Price: 3000, Status: models.StatusActive,
		},
		{
			ID: 3, Team1: "FC Goa", Team2: "Mumbai City FC",
			SportType: "Football", League: "ISL",
			Date: "2024-12-18", Time: "19:30",
			Venue: "Fatorda Stadium", Price: 500, Status: models.StatusActive,
		},
	}
}

func Events() []models.Event {
	return []models.Event{
		{
			ID: 1, Name: "Rock Concert 2024", Category: "Music",
			Date: "2024-12-20", Time: "19:00", Venue: "City Stadium", Price: 1500,
			Poster:      "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4?w=500",
			Description: "The biggest rock concert of the year featuring top artists.",
			Status:      models.StatusActive,
		},
		{
			ID: 2, Name: "IPL Cricket Match", Category: "Sports",
			Date: "2024-12-25", Time: "15:00", Venue: "National Cricket Stadium", Price: 2000,
			Poster:      "https://images.unsplash.com/photo-1531415074968-036ba1b575da?w=500",
			Description: "Exciting IPL match between top teams.",
			Status:      models.StatusActive,
		},
		{
			ID: 3, Name: "Stand-Up Comedy Night", Category: "Comedy",
			Date: "2024-12-18", Time: "20:00", Venue: "Laugh Factory", Price: 800,
			Poster:      "https://images.unsplash.com/photo-1585699324551-f6c309eedeca?w=500",
			Description: "An evening of laughter with top comedians.",
			Status:      models.StatusActive,
		},
	}
}

func StreamTitles() []models.StreamTitle {
	return []models.StreamTitle{
		{
			ID: 1, Title: "Oppenheimer", Genre: "Biography", Duration: "3h 00m", Rating: 8.9,
			Poster:      "https://image.tmdb.org/t/p/w500/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg",
			Description: "The story of American scientist J. Robert Oppenheimer and his role in the development of the atomic bomb.",
			Status:      models.StatusActive,
		},
		{
			ID: 2, Title: "Barbie", Genre: "Comedy", Duration: "1h 54m", Rating: 7.4,
			Poster:      "https://image.tmdb.org/t/p/w500/iuFNMS8U5cb6xfzi51Dbkovj7vM.jpg",
			Description: "Barbie suffers a crisis that leads her to question her world and her existence.",
			Status:      models.StatusActive,
		},
		{
			ID: 3, Title: "The Marvels", Genre: "Action", Duration: "1h 45m", Rating: 6.8,
			Poster:      "https://image.tmdb.org/t/p/w500/9GBhzXMFjgcZ3FdR9w3bUMMTps5.jpg",
			Description: "Carol Danvers gets her powers entangled with those of Kamala Khan and Monica Rambeau.",
			Status:      models.StatusActive,
		},
		{
			ID: 4, Title: "Napoleon", Genre: "History", Duration: "2h 38m", Rating: 7.0,
			Poster:      "https://image.tmdb.org/t/p/w500/vcZWJGvB5xydWuUO1vaTLI82tGi.jpg",
			Description: "An epic that details the checkered rise and fall of French Emperor Napoleon Bonaparte.",
			Status:      models.StatusActive,
		},
	}
}

func Theaters() []models.Theater {
	return []models.Theater{
		{
			ID: 1, Name: "INOX: Megaplex", Location: "Phoenix Marketcity, Mumbai", Distance: "2.5 km",
			Screens: []string{"IMAX", "4DX", "Regular"},
			Showtimes: []models.Showtime{
				{Time: "10:00 AM", Price: 200, Screen: "Regular"},
				{Time: "01:30 PM", Price: 250, Screen: "Regular"},
				{Time: "04:45 PM", Price: 300, Screen: "IMAX"},
				{Time: "07:30 PM", Price: 350, Screen: "4DX"},
				{Time: "10:15 PM", Price: 250, Screen: "Regular"},
			},
		},
		{
			ID: 2, Name: "PVR: Gold", Location: "Juhu, Mumbai", Distance: "4.2 km",
			Screens: []string{"Gold Class", "Regular"},
			Showtimes: []models.Showtime{
				{Time: "11:00 AM", Price: 400, Screen: "Gold Class"},
				{Time: "02:00 PM", Price: 220, Screen: "Regular"},
				{Time: "05:30 PM", Price: 450, Screen: "Gold Class"},
				{Time: "08:45 PM", Price: 280, Screen: "Regular"},
			},
		},
		{
			ID: 3, Name: "Cinepolis: VIP", Location: "Andheri West, Mumbai", Distance: "3.8 km",
			Screens: []string{"VIP", "Regular"},
			Showtimes: []models.Showtime{
				{Time: "12:00 PM", Price: 350, Screen: "VIP"},
				{Time: "03:15 PM", Price: 200, Screen: "Regular"},
				{Time: "06:30 PM", Price: 400, Screen: "VIP"},
				{Time: "09:45 PM", Price: 230, Screen: "Regular"},
			},
		},
	}
}

// Users builds the bootstrap admin account. The password is stored as a
// bcrypt hash, never in clear.
func Users(name, email, password string) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return []models.User{
		{
			ID:        1,
			Name:      name,
			Email:     email,
			Role:      models.RoleAdmin,
			Status:    models.StatusActive,
			Password:  string(hash),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Bookings is empty on purpose: bookings are produced by the
// customer-facing flow, the admin side only reads them.
func Bookings() []models.Booking {
	return nil
}
