package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/utils"
	"golang.org/x/sync/singleflight"
)

const (
	tmdbAPIBase   = "https://api.themoviedb.org/3"
	tmdbImageBase = "https://image.tmdb.org/t/p/w500"
)

// ImportInput TMDB 导入请求
type ImportInput struct {
	TMDBID int    `json:"tmdb_id" validate:"required,gt=0"`
	Type   string `json:"type" validate:"required,oneof=movie series"`
}

// TMDBService 从 TMDB 导入目录条目
type TMDBService struct {
	catalog *CatalogService
	client  *utils.HTTPClient
	token   string
	baseURL string
	group   singleflight.Group
}

// NewTMDBService token 为空时导入功能不可用
func NewTMDBService(catalog *CatalogService, token string) *TMDBService {
	return &TMDBService{
		catalog: catalog,
		client:  utils.NewHTTPClient("tmdb", 10*time.Second),
		token:   token,
		baseURL: tmdbAPIBase,
	}
}

// Enabled 是否已配置
func (s *TMDBService) Enabled() bool {
	return s.token != ""
}

type tmdbGenre struct {
	Name string `json:"name"`
}

type tmdbDetails struct {
	Title            string      `json:"title"`
	Name             string      `json:"name"`
	Overview         string      `json:"overview"`
	ReleaseDate      string      `json:"release_date"`
	FirstAirDate     string      `json:"first_air_date"`
	Runtime          int         `json:"runtime"`
	EpisodeRunTime   []int       `json:"episode_run_time"`
	NumberOfEpisodes int         `json:"number_of_episodes"`
	Genres           []tmdbGenre `json:"genres"`
	PosterPath       string      `json:"poster_path"`
}

// Import 拉取详情并写入目录
func (s *TMDBService) Import(ctx context.Context, in ImportInput) (*model.CatalogEntry, error) {
	if !s.Enabled() {
		return nil, validationError("TMDB import is not configured")
	}
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%d", in.Type, in.TMDBID)
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.importInternal(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	return val.(*model.CatalogEntry), nil
}

func (s *TMDBService) importInternal(ctx context.Context, in ImportInput) (*model.CatalogEntry, error) {
	path := "movie"
	if in.Type == model.TypeSeries {
		path = "tv"
	}
	url := fmt.Sprintf("%s/%s/%d?language=en-US", s.baseURL, path, in.TMDBID)

	var details tmdbDetails
	headers := map[string]string{"Authorization": "Bearer " + s.token}
	if err := s.client.GetJSON(ctx, url, headers, &details); err != nil {
		log := logging.With("tmdb")
		log.Warn().Err(err).Int("tmdb_id", in.TMDBID).Msg("获取 TMDB 详情失败")
		return nil, storeError(err)
	}

	return s.catalog.Create(ctx, details.toInput(in.Type))
}

// maxGenreRunes 与目录条目 genre 字段长度一致
const maxGenreRunes = 100

// toInput 转换为目录条目；剧集时长为单集时长乘以集数
func (d tmdbDetails) toInput(typ string) model.CatalogInput {
	in := model.CatalogInput{
		Title:       d.Title,
		Type:        typ,
		Description: d.Overview,
		Duration:    d.Runtime,
	}

	released := d.ReleaseDate
	if typ == model.TypeSeries {
		in.Title = d.Name
		released = d.FirstAirDate
		if len(d.EpisodeRunTime) > 0 {
			sum := 0
			for _, m := range d.EpisodeRunTime {
				sum += m
			}
			in.Duration = sum / len(d.EpisodeRunTime) * max(d.NumberOfEpisodes, 1)
		}
	}
	if date, err := model.ParseDate(released); err == nil {
		in.ReleaseDate = date
	}

	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	in.Genre = strings.Join(names, ", ")
	// 按字符截断，避免切开多字节字符
	if r := []rune(in.Genre); len(r) > maxGenreRunes {
		in.Genre = string(r[:maxGenreRunes])
	}
	if d.PosterPath != "" {
		in.PosterURL = tmdbImageBase + d.PosterPath
	}
	return in
}
