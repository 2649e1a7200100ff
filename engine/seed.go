package engine

import (
	"fmt"

	"lab_asset_ledger/models"
)

var seedNames = []string{
	"Karam Kim", "Doyun Lee", "Seoyeon Park", "Minjun Choi", "Harin Jung",
	"Jiwoo Han", "Seojun Yoon", "Yerin Jang", "Hajun Cho", "Dain Seo",
	"Junho Lim", "Sua Kwon", "Siwoo Baek", "Chaewon Moon", "Doyoung Shin",
	"Jiho Oh", "Seoyun Yang", "Yejun Hong", "Narae Ha",
}

var assetTypes = []struct {
	Code string
	Name string
}{
	{"E001", "Oscilloscope"},
	{"E002", "Multimeter"},
	{"E003", "Power Supply"},
	{"A101", "Torque Wrench"},
	{"A102", "OBD-II Scanner"},
	{"S001", "Soldering Iron"},
	{"S002", "Laptop"},
	{"S003", "Reflow Station"},
	{"S004", "Breadboard"},
	{"S005", "Digital Calipers"},
}

// seedStudents builds the fixed roster: three grades, one class each,
// twenty students per class, ids like "101".
func seedStudents() []models.Student {
	var students []models.Student
	for grade := 1; grade <= 3; grade++ {
		for i := 0; i < 20; i++ {
			students = append(students, models.Student{
				StudentID: fmt.Sprintf("%d%02d", grade, i+1),
				Name:      seedNames[(grade*20+i)%len(seedNames)],
				Grade:     grade,
				ClassNo:   1,
			})
		}
	}
	return students
}

// seedItems builds the fixed inventory: five units per equipment group,
// ids like "E001-01", all available.
func seedItems() []models.Item {
	var items []models.Item
	for _, t := range assetTypes {
		for i := 0; i < 5; i++ {
			items = append(items, models.Item{
				ItemID: fmt.Sprintf("%s-%02d", t.Code, i+1),
				Group:  t.Name,
				Status: models.StatusAvailable,
			})
		}
	}
	return items
}

func seedSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Students: seedStudents(),
		Items:    seedItems(),
		Tx:       []models.Transaction{},
	}
}
