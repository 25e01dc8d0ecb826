package models

type User struct {
    ID       uint   `gorm:"primaryKey" json:"id"`
    Nickname string `gorm:"column:nickname;size:255;not null;uniqueIndex" json:"nickname"`
    Age      int    `gorm:"column:age;not null" json:"age"`
    City     string `gorm:"column:city;size:255;not null" json:"city"`
}
