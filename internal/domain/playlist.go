package domain

// Song — элемент плейлиста.
type Song struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Year            int    `json:"year"`
	ExternalMediaID string `json:"youTubeId"`
}

// Playlist представляет именованную упорядоченную последовательность песен.
// Владелец определяется по OwnerEmail, а не по ID пользователя.
type Playlist struct {
	ID         ID     `json:"_id"`
	Name       string `json:"name"`
	OwnerEmail string `json:"ownerEmail"`
	Songs      []Song `json:"songs"`
}

// PlaylistUpdate полностью заменяет имя и песни плейлиста (не merge).
type PlaylistUpdate struct {
	Name  string
	Songs []Song
}

// PlaylistPair — проекция {id, name} для списка плейлистов владельца.
type PlaylistPair struct {
	ID   ID     `json:"_id"`
	Name string `json:"name"`
}

// NormalizeSongs возвращает непустой срез, чтобы оба бэкенда
// сериализовали отсутствие песен одинаково ([] вместо null).
func NormalizeSongs(songs []Song) []Song {
	if songs == nil {
		return []Song{}
	}
	return songs
}
