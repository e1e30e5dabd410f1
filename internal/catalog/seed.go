package catalog

import "github.com/iliyamo/train-seat-reservation/internal/model"

// Seed registers a small demo timetable so the server is usable out of
// the box.  Production deployments replace this with their own feed.
func Seed(c *Catalog) error {
	rajdhani := &model.Train{
		ID:            "12951",
		Name:          "Mumbai Rajdhani",
		DepartureHour: 17,
		DepartureMin:  0,
		Route: []model.RouteStop{
			{StationCode: "BCT", StationName: "Mumbai Central", DistanceKM: 0},
			{StationCode: "BRC", StationName: "Vadodara Jn", DistanceKM: 392},
			{StationCode: "RTM", StationName: "Ratlam Jn", DistanceKM: 653},
			{StationCode: "KOTA", StationName: "Kota Jn", DistanceKM: 918},
			{StationCode: "NDLS", StationName: "New Delhi", DistanceKM: 1384},
		},
	}
	rajdhani.Coaches = []*model.Coach{
		model.NewCoach("H1", rajdhani.ID, model.CoachFirstAC, 18, model.SleeperBerthCycle),
		model.NewCoach("A1", rajdhani.ID, model.CoachSecondAC, 48, model.SleeperBerthCycle),
		model.NewCoach("B1", rajdhani.ID, model.CoachThirdAC, 64, model.SleeperBerthCycle),
		model.NewCoach("B2", rajdhani.ID, model.CoachThirdAC, 64, model.SleeperBerthCycle),
	}
	if err := c.Register(rajdhani); err != nil {
		return err
	}

	express := &model.Train{
		ID:            "12009",
		Name:          "Shatabdi Express",
		DepartureHour: 6,
		DepartureMin:  25,
		Route: []model.RouteStop{
			{StationCode: "BCT", StationName: "Mumbai Central", DistanceKM: 0},
			{StationCode: "ST", StationName: "Surat", DistanceKM: 263},
			{StationCode: "BRC", StationName: "Vadodara Jn", DistanceKM: 392},
			{StationCode: "ADI", StationName: "Ahmedabad Jn", DistanceKM: 491},
		},
	}
	express.Coaches = []*model.Coach{
		model.NewCoach("C1", express.ID, model.CoachACChair, 72, nil),
		model.NewCoach("C2", express.ID, model.CoachACChair, 72, nil),
		model.NewCoach("D1", express.ID, model.CoachSecondSeating, 96, nil),
	}
	if err := c.Register(express); err != nil {
		return err
	}

	mail := &model.Train{
		ID:            "11027",
		Name:          "Chennai Mail",
		DepartureHour: 23,
		DepartureMin:  45,
		Route: []model.RouteStop{
			{StationCode: "CSMT", StationName: "Mumbai CSMT", DistanceKM: 0},
			{StationCode: "PUNE", StationName: "Pune Jn", DistanceKM: 192},
			{StationCode: "SUR", StationName: "Solapur", DistanceKM: 455},
			{StationCode: "MAS", StationName: "Chennai Central", DistanceKM: 1280},
		},
	}
	mail.Coaches = []*model.Coach{
		model.NewCoach("S1", mail.ID, model.CoachSleeper, 72, model.SleeperBerthCycle),
		model.NewCoach("S2", mail.ID, model.CoachSleeper, 72, model.SleeperBerthCycle),
		model.NewCoach("S3", mail.ID, model.CoachSleeper, 72, model.SleeperBerthCycle),
		model.NewCoach("GEN", mail.ID, model.CoachGeneral, 90, nil),
	}
	return c.Register(mail)
}
