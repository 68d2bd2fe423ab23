package excel

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// Cabeceras canónicas de las dos hojas.
var (
	stockHeader = []string{
		"product_id", "product_name", "product_type",
		"unit_value", "quantity", "last_updated", "total_value",
	}
	transactionsHeader = []string{
		"transaction_id", "timestamp", "product_id", "product_name",
		"product_type", "movement_type", "quantity", "unit_value", "total_value",
	}
)

// Workbook es el adaptador sobre el archivo .xlsx que actúa como base de datos.
// El medio no tiene primitivas de update por fila ni transacciones: toda escritura
// carga el archivo completo, reemplaza una hoja y reescribe el archivo entero,
// preservando las demás hojas. El mutex serializa operaciones completas dentro
// del proceso (ver TxRunner); no hay protección entre procesos.
type Workbook struct {
	mu   sync.Mutex
	path string

	stockSheet        string
	transactionsSheet string

	log *logger.Logger
}

// NewWorkbook construye el adaptador. No toca el disco; llamar EnsureInitialized.
func NewWorkbook(cfg config.StorageConfig, log *logger.Logger) *Workbook {
	return &Workbook{
		path:              cfg.FilePath,
		stockSheet:        cfg.StockSheet,
		transactionsSheet: cfg.TransactionsSheet,
		log:               log,
	}
}

// StockSheet devuelve el nombre de la hoja de stock actual.
func (w *Workbook) StockSheet() string { return w.stockSheet }

// TransactionsSheet devuelve el nombre de la hoja de histórico de movimientos.
func (w *Workbook) TransactionsSheet() string { return w.transactionsSheet }

func (w *Workbook) headerFor(sheet string) []string {
	switch sheet {
	case w.stockSheet:
		return stockHeader
	case w.transactionsSheet:
		return transactionsHeader
	}
	return nil
}

// EnsureInitialized garantiza que el archivo exista con ambas hojas y sus cabeceras.
// Idempotente: nunca duplica hojas ni destruye filas existentes. Si el archivo
// existe pero le falta una hoja, la agrega vacía preservando el resto.
func (w *Workbook) EnsureInitialized() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ensureInitialized()
}

func (w *Workbook) ensureInitialized() error {
	info, err := os.Stat(w.path)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		return w.createEmpty()
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", w.path, err)
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", w.path, err)
	}
	defer f.Close()

	existing := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		existing[name] = true
	}

	changed := false
	for _, sheet := range []string{w.stockSheet, w.transactionsSheet} {
		if existing[sheet] {
			continue
		}
		w.log.Info().Str("sheet", sheet).Msg("agregando hoja ausente al workbook")
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("crear hoja %s: %w", sheet, err)
		}
		if err := w.setHeader(f, sheet); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		if err := f.Save(); err != nil {
			return fmt.Errorf("guardar %s: %w", w.path, err)
		}
	}
	return nil
}

func (w *Workbook) createEmpty() error {
	w.log.Info().Str("path", w.path).Msg("inicializando workbook con hojas y cabeceras")

	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range []string{w.stockSheet, w.transactionsSheet} {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("crear hoja %s: %w", sheet, err)
		}
		if err := w.setHeader(f, sheet); err != nil {
			return err
		}
		if sheet == w.stockSheet {
			f.SetActiveSheet(idx)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("eliminar hoja por defecto: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("guardar %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) setHeader(f *excelize.File, sheet string) error {
	header := w.headerFor(sheet)
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("escribir cabecera de %s: %w", sheet, err)
	}
	return nil
}

// readRows devuelve todas las filas de datos de la hoja (sin cabecera), con cada
// fila rellenada al ancho de la cabecera canónica. Política de lectura tolerante:
// un fallo transitorio degrada a "sin datos" con un warn en el log, nunca a error.
// El caller debe poseer el lock.
func (w *Workbook) readRows(sheet string) [][]string {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("workbook ilegible, tratando la hoja como vacía")
		return nil
	}
	defer f.Close()

	raw, err := f.GetRows(sheet)
	if err != nil {
		w.log.Warn().Err(err).Str("sheet", sheet).Msg("hoja ilegible, tratando como vacía")
		return nil
	}
	if len(raw) <= 1 {
		return nil
	}

	width := len(w.headerFor(sheet))
	rows := make([][]string, 0, len(raw)-1)
	for _, r := range raw[1:] { // descarta la fila de cabecera
		row := make([]string, width)
		copy(row, r)
		rows = append(rows, row)
	}
	return rows
}

// writeRows reemplaza el contenido completo de la hoja (cabecera + filas) y
// reescribe el archivo entero; las demás hojas pasan intactas por el round-trip.
// Política de escritura estricta: cualquier fallo se propaga, porque una escritura
// fallida puede dejar las dos hojas mutuamente inconsistentes y el operador debe
// inspeccionar el archivo. El caller debe poseer el lock.
func (w *Workbook) writeRows(sheet string, rows [][]interface{}) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("abrir %s para escritura: %w", w.path, err)
	}
	defer f.Close()

	// Reemplazo de la hoja completa: eliminar y recrear deja el resto del
	// workbook sin tocar.
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("reemplazar hoja %s: %w", sheet, err)
		}
	}
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("recrear hoja %s: %w", sheet, err)
	}
	f.SetActiveSheet(idx)

	if err := w.setHeader(f, sheet); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("celda de la fila %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("escribir fila %d de %s: %w", i+2, sheet, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("guardar %s: %w", w.path, err)
	}
	return nil
}

// appendRow lee la hoja completa, agrega una fila al final y reescribe.
// No es atómico respecto a otros escritores; asume un único escritor activo.
// El caller debe poseer el lock.
func (w *Workbook) appendRow(sheet string, row []interface{}) error {
	existing := w.readRows(sheet)
	rows := make([][]interface{}, 0, len(existing)+1)
	for _, r := range existing {
		cells := make([]interface{}, len(r))
		for i, c := range r {
			cells[i] = c
		}
		rows = append(rows, cells)
	}
	rows = append(rows, row)
	return w.writeRows(sheet, rows)
}
