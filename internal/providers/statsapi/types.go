package statsapi

type scheduleResponse struct {
	Dates []dateResponse `json:"dates"`
}

type dateResponse struct {
	Date  string         `json:"date"`
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	GamePk   int             `json:"gamePk"`
	GameDate string          `json:"gameDate"`
	Teams    teamsResponse   `json:"teams"`
	Content  contentResponse `json:"content"`
}

type teamsResponse struct {
	Away sideResponse `json:"away"`
	Home sideResponse `json:"home"`
}

type sideResponse struct {
	Team teamResponse `json:"team"`
}

type teamResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type contentResponse struct {
	Editorial *editorialResponse `json:"editorial"`
}

type editorialResponse struct {
	Recap recapResponse `json:"recap"`
}

type recapResponse struct {
	MLB *articleResponse `json:"mlb"`
}

type articleResponse struct {
	Headline string        `json:"headline"`
	Image    imageResponse `json:"image"`
}

type imageResponse struct {
	Cuts []cutResponse `json:"cuts"`
}

type cutResponse struct {
	Src string `json:"src"`
}
