package registry

import (
	"bytes"
	"io"

	"VoxStudio/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// CustomTextKey 自由文本使用的保留键
const CustomTextKey = "custom"

// LoadTextInputs 合并上传的文本表与自由文本，返回 文件名 -> 文本 的映射
//
// 表格格式：表头 [Text, File_name]，任一列为空的行被跳过。
// freeText 非空时以保留键 custom 写入，覆盖表格中同名的行。
func LoadTextInputs(table io.Reader, freeText string) map[string]string {
	texts := map[string]string{}

	if table != nil {
		f, err := excelize.OpenReader(table)
		if err != nil {
			logger.Warn("failed to open text workbook", zap.Error(err))
		} else {
			defer f.Close()
			rows, err := f.GetRows(f.GetSheetName(0))
			if err != nil {
				logger.Warn("failed to read text workbook", zap.Error(err))
			} else {
				for i, row := range rows {
					if i == 0 || len(row) < 2 {
						continue
					}
					if row[0] == "" || row[1] == "" {
						continue
					}
					texts[row[1]] = row[0]
				}
			}
		}
	}

	if freeText != "" {
		texts[CustomTextKey] = freeText
	}
	return texts
}

// TextTemplate 生成带示例行的文本表模板，供下载填写
func TextTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Text", "File_name"},
		{"Hello, how are you?", "greeting1"},
		{"Welcome to our app!", "welcome1"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}
