package entity

import "time"

// DbTravelPhoto is a photo attached to a travel log. The blob lives in object
// storage; only the key and metadata are persisted here.
type DbTravelPhoto struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	TravelLogID      uint      `gorm:"column:travel_log_id;index;not null" json:"travelLogId"`
	StorageKey       string    `gorm:"column:storage_key;type:varchar(255);not null" json:"-"`
	OriginalFilename string    `gorm:"column:original_filename;type:varchar(255)" json:"originalFilename"`
	ContentType      string    `gorm:"column:content_type;type:varchar(100)" json:"contentType"`
	FileSize         int64     `gorm:"column:file_size" json:"fileSize"`
	DisplayOrder     int       `gorm:"column:display_order;not null" json:"displayOrder"`
}

// TableName 指定表名
func (DbTravelPhoto) TableName() string {
	return "travel_photos"
}

// PhotoResponse 照片的对外表示，URL 由存储层的公共地址拼出
type PhotoResponse struct {
	ID               uint      `json:"id"`
	URL              string    `json:"url"`
	OriginalFilename string    `json:"originalFilename"`
	ContentType      string    `json:"contentType"`
	FileSize         int64     `json:"fileSize"`
	DisplayOrder     int       `json:"displayOrder"`
	CreatedAt        time.Time `json:"createdAt"`
}

// MakePhotoResponse maps a photo entity to its client projection. resolveURL
// turns the storage key into a public URL.
func MakePhotoResponse(photo *DbTravelPhoto, resolveURL func(string) string) PhotoResponse {
	if photo == nil {
		return PhotoResponse{}
	}
	url := photo.StorageKey
	if resolveURL != nil {
		url = resolveURL(photo.StorageKey)
	}
	return PhotoResponse{
		ID:               photo.ID,
		URL:              url,
		OriginalFilename: photo.OriginalFilename,
		ContentType:      photo.ContentType,
		FileSize:         photo.FileSize,
		DisplayOrder:     photo.DisplayOrder,
		CreatedAt:        photo.CreatedAt,
	}
}

// MakePhotoResponses maps a slice of photos, preserving order.
func MakePhotoResponses(photos []DbTravelPhoto, resolveURL func(string) string) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for i := range photos {
		out = append(out, MakePhotoResponse(&photos[i], resolveURL))
	}
	return out
}
