package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay 一天内的时刻（自 00:00 起的分钟数），不带日期。
// 所有课程视为在同一天重复，冲突检测只比较时刻。
type TimeOfDay int

const minutesPerDay = 24 * 60

// NewTimeOfDay 由时、分构造
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay 解析 "15:04" 或 "15:04:05"（秒被截断）
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("无效的时刻格式 %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("无效的小时 %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("无效的分钟 %q", s)
	}
	if len(parts) == 3 {
		// Postgres 可能返回 "15:00:00.000000"
		sec := strings.SplitN(parts[2], ".", 2)[0]
		if n, err := strconv.Atoi(sec); err != nil || n < 0 || n > 59 {
			return 0, fmt.Errorf("无效的秒 %q", s)
		}
	}
	return NewTimeOfDay(h, m), nil
}

// Hour 小时（0-23）
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute 分钟（0-59）
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Valid 是否落在 [00:00, 24:00)
func (t TimeOfDay) Valid() bool { return t >= 0 && t < minutesPerDay }

// String 24 小时制 "15:04"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Format12h 12 小时制 "03:04 PM"，仅用于展示
func (t TimeOfDay) Format12h() string {
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format("03:04 PM")
}

// Overlaps 判断半开区间 [start, end) 与 [otherStart, otherEnd) 是否相交。
// 端点相接（end == otherStart）不算冲突。
func Overlaps(start, end, otherStart, otherEnd TimeOfDay) bool {
	return !(end <= otherStart || start >= otherEnd)
}

// ── GORM Scanner / Valuer（Postgres TIME 列） ──

// Scan 支持 string / []byte / time.Time 三种驱动返回值
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return fmt.Errorf("TimeOfDay.Scan: %w", err)
		}
		*t = parsed
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return fmt.Errorf("TimeOfDay.Scan: %w", err)
		}
		*t = parsed
	case time.Time:
		*t = NewTimeOfDay(v.Hour(), v.Minute())
	default:
		return fmt.Errorf("TimeOfDay.Scan: unsupported type %T", src)
	}
	return nil
}

// Value 序列化为 "15:04:00"
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

// ── JSON ──

// MarshalText 输出 "15:04"
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText 解析 "15:04" / "15:04:05"
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
