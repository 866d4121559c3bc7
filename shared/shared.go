package shared

import (
	"bistro/shared/cache"
	"bistro/shared/constant"
	"bistro/shared/dto"
	"bistro/shared/timezone"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeySeparator = ":"
	cacheQueryHashLen = 16
)

// ConvertStringToBool reads an optional boolean query value. Absent or unparsable input
// yields nil, meaning "no filter".
func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("ignoring malformed bool")

		return nil
	}

	return &parsed
}

// ConvertStringToInt parses a query value, returning 0 when it is absent or malformed so
// that struct validation reports the field.
func ConvertStringToInt(value string) int {
	if value == constant.Empty {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("ignoring malformed int")

		return 0
	}

	return parsed
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields collects the non-zero db-tagged fields of a patch struct into an update
// set, stamped with the modification audit columns.
func TransformFields(patch any, username string) map[string]any {
	value := reflect.Indirect(reflect.ValueOf(patch))
	fields := make(map[string]any, value.NumField()+2)

	for i := range value.NumField() {
		column := value.Type().Field(i).Tag.Get("db")
		if column == constant.Empty || value.Field(i).IsZero() {
			continue
		}

		fields[column] = value.Field(i).Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = username

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.And(dto.Eq(table, fieldID, id))
}

// BuildCacheKey joins the prefix and parts into a redis key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the listing parameters and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to encode cache query")

		return BuildCacheKey(prefix, fmt.Sprintf("%v", params))
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:])[:cacheQueryHashLen])
}

// InvalidateCaches removes every key under the prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// RestrictSort keeps the requested sort column only when it is whitelisted, replacing it with
// its qualified name. Unknown or missing columns fall back to the given column and direction.
func RestrictSort(params dto.QueryParams, allowed map[string]string, fallback, fallbackDir string) dto.QueryParams {
	column, ok := allowed[params.SortBy]
	if !ok {
		params.SortBy = fallback
		params.SortDir = fallbackDir

		return params
	}

	params.SortBy = column
	if params.SortDir == constant.Empty {
		params.SortDir = dto.SortDirAsc
	}

	return params
}
