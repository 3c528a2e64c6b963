package i18n

// Key identifies a UI string
type Key string

const (
	Title             Key = "app.title"
	NowPlaying        Key = "app.nowPlaying"
	TopRated          Key = "app.topRated"
	Search            Key = "app.search"
	SearchPlaceholder Key = "app.searchPlaceholder"
	SearchResults     Key = "app.searchResults"
	NoResults         Key = "app.noResults"
	NetworkError      Key = "app.networkError"
	TryAgain          Key = "app.tryAgain"
	Error             Key = "app.error"
	Back              Key = "app.back"
	Overview          Key = "app.overview"
	NoOverview        Key = "app.noOverview"
	ReleaseDate       Key = "app.releaseDate"
	VoteCount         Key = "app.voteCount"
	Rating            Key = "app.rating"
	Runtime           Key = "app.runtime"
	Minutes           Key = "app.minutes"
	Budget            Key = "app.budget"
	Revenue           Key = "app.revenue"
	Genres            Key = "app.genres"
	Companies         Key = "app.productionCompanies"
	Poster            Key = "app.poster"
	Backdrop          Key = "app.backdrop"
	Loading           Key = "app.loading"
	LoadingMore       Key = "app.loadingMore"
	EndOfList         Key = "app.endOfList"
	ResultCount       Key = "app.resultCount"
	GridView          Key = "app.gridView"
	ListView          Key = "app.listView"
	Light             Key = "app.light"
	Dark              Key = "app.dark"
	FilterActive      Key = "app.filterActive"

	ErrNotFound     Key = "error.notFound"
	ErrListNotFound Key = "error.listNotFound"
	ErrUnauthorized Key = "error.unauthorized"
	ErrServer       Key = "error.server"
	ErrServerStatus Key = "error.serverStatus"
	ErrDecode       Key = "error.decode"
	ErrInvalid      Key = "error.invalid"
	ErrCanceled     Key = "error.canceled"
)

var english = map[Key]string{
	Title:             "Movie Browser",
	NowPlaying:        "Now Playing",
	TopRated:          "Top Rated",
	Search:            "Search",
	SearchPlaceholder: "Search movies...",
	SearchResults:     "Results for \"%s\"",
	NoResults:         "No movies found",
	NetworkError:      "Network error, please check your connection.",
	TryAgain:          "Try again",
	Error:             "Error",
	Back:              "Back",
	Overview:          "Overview",
	NoOverview:        "No overview available.",
	ReleaseDate:       "Release date",
	VoteCount:         "Votes",
	Rating:            "Rating",
	Runtime:           "Runtime",
	Minutes:           "%d min",
	Budget:            "Budget",
	Revenue:           "Revenue",
	Genres:            "Genres",
	Companies:         "Production companies",
	Poster:            "Poster",
	Backdrop:          "Backdrop",
	Loading:           "Loading...",
	LoadingMore:       "Loading more...",
	EndOfList:         "No more movies",
	ResultCount:       "%d of %d movies",
	GridView:          "Grid",
	ListView:          "List",
	Light:             "Light",
	Dark:              "Dark",
	FilterActive:      "filter: %s",

	ErrNotFound:     "Movie not found.",
	ErrListNotFound: "Not found.",
	ErrUnauthorized: "The TMDB API key was rejected.",
	ErrServer:       "Server error (%d): %s",
	ErrServerStatus: "Server error (%d).",
	ErrDecode:       "Unexpected response from the server.",
	ErrInvalid:      "Invalid request: %s",
	ErrCanceled:     "Request cancelled.",
}

var traditionalChinese = map[Key]string{
	Title:             "電影瀏覽",
	NowPlaying:        "現正上映",
	TopRated:          "最高評分",
	Search:            "搜尋",
	SearchPlaceholder: "搜尋電影...",
	SearchResults:     "「%s」的搜尋結果",
	NoResults:         "找不到電影",
	NetworkError:      "網路錯誤，請檢查您的連線。",
	TryAgain:          "再試一次",
	Error:             "錯誤",
	Back:              "返回",
	Overview:          "劇情簡介",
	NoOverview:        "暫無劇情簡介。",
	ReleaseDate:       "上映日期",
	VoteCount:         "評分人數",
	Rating:            "評分",
	Runtime:           "片長",
	Minutes:           "%d 分鐘",
	Budget:            "預算",
	Revenue:           "票房",
	Genres:            "類型",
	Companies:         "製作公司",
	Poster:            "海報",
	Backdrop:          "背景圖",
	Loading:           "載入中...",
	LoadingMore:       "載入更多...",
	EndOfList:         "沒有更多電影了",
	ResultCount:       "%d / %d 部電影",
	GridView:          "網格",
	ListView:          "列表",
	Light:             "淺色",
	Dark:              "深色",
	FilterActive:      "篩選：%s",

	ErrNotFound:     "找不到這部電影。",
	ErrListNotFound: "找不到資料。",
	ErrUnauthorized: "TMDB API 金鑰遭拒絕。",
	ErrServer:       "伺服器錯誤 (%d)：%s",
	ErrServerStatus: "伺服器錯誤 (%d)。",
	ErrDecode:       "伺服器回應格式錯誤。",
	ErrInvalid:      "無效的請求：%s",
	ErrCanceled:     "請求已取消。",
}
