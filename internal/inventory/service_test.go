package inventory

import (
	"context"
	"errors"
	"testing"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory Store double. Transaction snapshots the state and
// restores it when the callback fails, mirroring rollback semantics.
type memStore struct {
	inventories  map[uint]models.Inventory
	departments  map[uint]models.Department
	deptStocks   map[[2]uint]models.DepartmentInventory // key: {departmentID, inventoryID}
	transactions []models.InventoryTransaction
	nextInvID    uint
	nextEntryID  uint

	failCreateTransaction bool // injected store failure
}

func newMemStore() *memStore {
	return &memStore{
		inventories: make(map[uint]models.Inventory),
		departments: make(map[uint]models.Department),
		deptStocks:  make(map[[2]uint]models.DepartmentInventory),
	}
}

func (m *memStore) seedInventory(inv models.Inventory) uint {
	m.nextInvID++
	inv.ID = m.nextInvID
	m.inventories[inv.ID] = inv
	return inv.ID
}

func (m *memStore) seedDepartment(d models.Department) uint {
	d.ID = uint(len(m.departments) + 1)
	m.departments[d.ID] = d
	return d.ID
}

func (m *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range m.inventories {
		cp.inventories[k] = v
	}
	for k, v := range m.departments {
		cp.departments[k] = v
	}
	for k, v := range m.deptStocks {
		cp.deptStocks[k] = v
	}
	cp.transactions = append([]models.InventoryTransaction(nil), m.transactions...)
	cp.nextInvID = m.nextInvID
	cp.nextEntryID = m.nextEntryID
	return cp
}

func (m *memStore) restore(snap *memStore) {
	m.inventories = snap.inventories
	m.departments = snap.departments
	m.deptStocks = snap.deptStocks
	m.transactions = snap.transactions
	m.nextInvID = snap.nextInvID
	m.nextEntryID = snap.nextEntryID
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) FindInventory(ctx context.Context, id uint) (*models.Inventory, error) {
	inv, ok := m.inventories[id]
	if !ok {
		return nil, apperr.NotFoundf("inventory %d", id)
	}
	cp := inv
	return &cp, nil
}

func (m *memStore) FindInventoryWithRelations(ctx context.Context, id uint) (*models.Inventory, error) {
	inv, err := m.FindInventory(ctx, id)
	if err != nil {
		return nil, err
	}
	for key, ds := range m.deptStocks {
		if key[1] == id {
			ds.Department = m.departments[key[0]]
			inv.DepartmentStocks = append(inv.DepartmentStocks, ds)
		}
	}
	for _, tr := range m.transactions {
		if tr.InventoryID == id {
			inv.Transactions = append(inv.Transactions, tr)
		}
	}
	return inv, nil
}

func (m *memStore) ListInventories(ctx context.Context, consumerID uint) ([]models.Inventory, error) {
	var out []models.Inventory
	for _, inv := range m.inventories {
		if consumerID == 0 || inv.ConsumerID == consumerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memStore) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	m.nextInvID++
	inv.ID = m.nextInvID
	m.inventories[inv.ID] = *inv
	return nil
}

func (m *memStore) SaveInventory(ctx context.Context, inv *models.Inventory) error {
	if _, ok := m.inventories[inv.ID]; !ok {
		return apperr.NotFoundf("inventory %d", inv.ID)
	}
	m.inventories[inv.ID] = *inv
	return nil
}

func (m *memStore) FindDepartment(ctx context.Context, id uint) (*models.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, apperr.NotFoundf("department %d", id)
	}
	cp := d
	return &cp, nil
}

func (m *memStore) FindDepartmentInventory(ctx context.Context, departmentID, inventoryID uint) (*models.DepartmentInventory, error) {
	di, ok := m.deptStocks[[2]uint{departmentID, inventoryID}]
	if !ok {
		return nil, apperr.NotFoundf("department inventory (department %d, inventory %d)", departmentID, inventoryID)
	}
	cp := di
	return &cp, nil
}

func (m *memStore) CreateDepartmentInventory(ctx context.Context, di *models.DepartmentInventory) error {
	di.ID = uint(len(m.deptStocks) + 1)
	m.deptStocks[[2]uint{di.DepartmentID, di.InventoryID}] = *di
	return nil
}

func (m *memStore) SaveDepartmentInventory(ctx context.Context, di *models.DepartmentInventory) error {
	m.deptStocks[[2]uint{di.DepartmentID, di.InventoryID}] = *di
	return nil
}

func (m *memStore) CreateTransaction(ctx context.Context, entry *models.InventoryTransaction) error {
	if m.failCreateTransaction {
		return errors.New("constraint violation")
	}
	m.nextEntryID++
	entry.ID = m.nextEntryID
	m.transactions = append(m.transactions, *entry)
	return nil
}

func (m *memStore) ListTransactions(ctx context.Context, inventoryID uint) ([]models.InventoryTransaction, error) {
	var out []models.InventoryTransaction
	for _, tr := range m.transactions {
		if tr.InventoryID == inventoryID {
			out = append(out, tr)
		}
	}
	return out, nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, zap.NewNop()), store
}

func ptr[T any](v T) *T { return &v }

func TestApplyTransferDeptOut(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "Radiology", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Syringe", Quantity: 100, UnitMeasure: models.UnitPiece, ConsumerID: 1})

	inv, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID:  invID,
		Quantity:     30,
		Type:         models.TxDeptOut,
		DepartmentID: &deptID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(70), inv.Quantity)
	require.Len(t, inv.DepartmentStocks, 1)
	assert.Equal(t, int64(30), inv.DepartmentStocks[0].Quantity)
	require.Len(t, inv.Transactions, 1)
	assert.Equal(t, models.TxDeptOut, inv.Transactions[0].Type)
	assert.Equal(t, int64(30), inv.Transactions[0].Quantity)
}

func TestApplyTransferInsufficientStock(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "Radiology", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Syringe", Quantity: 70, UnitMeasure: models.UnitPiece, ConsumerID: 1})

	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID:  invID,
		Quantity:     150,
		Type:         models.TxDeptOut,
		DepartmentID: &deptID,
	})
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)

	var shortfall *apperr.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, int64(150), shortfall.Requested)
	assert.Equal(t, int64(70), shortfall.Available)

	// Nothing written: quantity intact, no log row, no department row.
	assert.Equal(t, int64(70), store.inventories[invID].Quantity)
	assert.Empty(t, store.transactions)
	assert.Empty(t, store.deptStocks)
}

func TestApplyTransferDeptReturn(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "ICU", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Glove", Quantity: 100, UnitMeasure: models.UnitBox, ConsumerID: 1})

	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 40, Type: models.TxDeptOut, DepartmentID: &deptID,
	})
	require.NoError(t, err)

	inv, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 10, Type: models.TxDeptGeneralReturn, DepartmentID: &deptID,
	})
	require.NoError(t, err)

	// Return restocks the central pool and drains the department pool.
	assert.Equal(t, int64(70), inv.Quantity)
	assert.Equal(t, int64(30), store.deptStocks[[2]uint{deptID, invID}].Quantity)
	assert.Len(t, store.transactions, 2)
}

func TestApplyTransferReturnExceedsDeptBalance(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "ICU", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Glove", Quantity: 100, UnitMeasure: models.UnitBox, ConsumerID: 1})

	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 20, Type: models.TxDeptOut, DepartmentID: &deptID,
	})
	require.NoError(t, err)

	_, err = svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 50, Type: models.TxDeptExpiredReturn, DepartmentID: &deptID,
	})
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)

	var shortfall *apperr.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	require.NotNil(t, shortfall.DepartmentID)
	assert.Equal(t, int64(20), shortfall.Available)

	assert.Equal(t, int64(80), store.inventories[invID].Quantity)
	assert.Equal(t, int64(20), store.deptStocks[[2]uint{deptID, invID}].Quantity)
	assert.Len(t, store.transactions, 1)
}

func TestApplyTransferReturnWithoutIssuedStock(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "ICU", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Glove", Quantity: 100, UnitMeasure: models.UnitBox, ConsumerID: 1})

	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 5, Type: models.TxDeptGeneralReturn, DepartmentID: &deptID,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, int64(100), store.inventories[invID].Quantity)
}

func TestApplyTransferDisposedCannotGoNegative(t *testing.T) {
	svc, store := newTestService()
	invID := store.seedInventory(models.Inventory{Name: "Monitor", Quantity: 2, UnitMeasure: models.UnitPiece, ConsumerID: 1})

	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 3, Type: models.TxDisposed,
	})
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.Equal(t, int64(2), store.inventories[invID].Quantity)
}

func TestApplyTransferValidation(t *testing.T) {
	svc, store := newTestService()
	invID := store.seedInventory(models.Inventory{Name: "X", Quantity: 10, UnitMeasure: models.UnitPiece, ConsumerID: 1})

	cases := []struct {
		name string
		in   TransferInput
	}{
		{"missing inventory id", TransferInput{Quantity: 1, Type: models.TxIn}},
		{"zero quantity", TransferInput{InventoryID: invID, Quantity: 0, Type: models.TxIn}},
		{"negative quantity", TransferInput{InventoryID: invID, Quantity: -5, Type: models.TxIn}},
		{"unknown type", TransferInput{InventoryID: invID, Quantity: 1, Type: "TELEPORTED"}},
		{"dept code without department", TransferInput{InventoryID: invID, Quantity: 1, Type: models.TxDeptOut}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ApplyTransfer(context.Background(), tc.in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
	assert.Empty(t, store.transactions)
}

func TestApplyTransferUnknownInventory(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: 99, Quantity: 1, Type: models.TxIn,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestApplyTransferRollsBackOnStoreFailure(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "Lab", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Reagent", Quantity: 50, UnitMeasure: models.UnitLitre, ConsumerID: 1})

	store.failCreateTransaction = true
	_, err := svc.ApplyTransfer(context.Background(), TransferInput{
		InventoryID: invID, Quantity: 10, Type: models.TxDeptOut, DepartmentID: &deptID,
	})
	require.ErrorIs(t, err, apperr.ErrTransactionAborted)

	// The quantity updates made before the log write must not survive.
	assert.Equal(t, int64(50), store.inventories[invID].Quantity)
	assert.Empty(t, store.deptStocks)
	assert.Empty(t, store.transactions)
}

func TestApplyTransferLogCompleteness(t *testing.T) {
	svc, store := newTestService()
	deptID := store.seedDepartment(models.Department{Name: "Lab", ConsumerID: 1})
	invID := store.seedInventory(models.Inventory{Name: "Reagent", Quantity: 100, UnitMeasure: models.UnitLitre, ConsumerID: 1})

	moves := []TransferInput{
		{InventoryID: invID, Quantity: 10, Type: models.TxDeptOut, DepartmentID: &deptID},
		{InventoryID: invID, Quantity: 4, Type: models.TxDeptGeneralReturn, DepartmentID: &deptID},
		{InventoryID: invID, Quantity: 7, Type: models.TxIn},
		{InventoryID: invID, Quantity: 2, Type: models.TxSupplierReturn, SupplierID: ptr(uint(3))},
	}
	for _, mv := range moves {
		_, err := svc.ApplyTransfer(context.Background(), mv)
		require.NoError(t, err)
	}

	require.Len(t, store.transactions, len(moves))
	for i, mv := range moves {
		assert.Equal(t, mv.Quantity, store.transactions[i].Quantity)
		assert.Equal(t, mv.Type, store.transactions[i].Type)
	}
	// 100 - 10 + 4 + 7 - 2
	assert.Equal(t, int64(99), store.inventories[invID].Quantity)
}

func TestReceiveRestockSameUnit(t *testing.T) {
	svc, store := newTestService()
	invID := store.seedInventory(models.Inventory{Name: "Syringe", ItemNo: "INV0000000001", Quantity: 70, UnitMeasure: models.UnitPiece, ConsumerID: 1})

	inv, err := svc.ReceiveOrRestock(context.Background(), ReceiptInput{
		ItemID:      &invID,
		Quantity:    20,
		UnitMeasure: models.UnitPiece,
		ConsumerID:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, invID, inv.ID)
	assert.Equal(t, int64(90), inv.Quantity)
	require.Len(t, store.transactions, 1)
	assert.Equal(t, models.TxIn, store.transactions[0].Type)
	assert.Equal(t, int64(20), store.transactions[0].Quantity)
}

func TestReceiveUnitMismatchForksNewSKU(t *testing.T) {
	svc, store := newTestService()
	invID := store.seedInventory(models.Inventory{Name: "Syringe", ItemNo: "INV0000000001", Quantity: 90, UnitMeasure: models.UnitPiece, ConsumerID: 1})

	inv, err := svc.ReceiveOrRestock(context.Background(), ReceiptInput{
		ItemID:      &invID,
		Quantity:    20,
		UnitMeasure: models.UnitBox,
		ConsumerID:  1,
	})
	require.NoError(t, err)

	assert.NotEqual(t, invID, inv.ID)
	assert.Equal(t, models.UnitBox, inv.UnitMeasure)
	assert.Equal(t, int64(20), inv.Quantity)
	assert.NotEmpty(t, inv.ItemNo)
	assert.NotEqual(t, "INV0000000001", inv.ItemNo)

	// Original SKU untouched.
	assert.Equal(t, int64(90), store.inventories[invID].Quantity)
	require.Len(t, store.transactions, 1)
	assert.Equal(t, inv.ID, store.transactions[0].InventoryID)
}

func TestReceiveWithoutItemCreatesRow(t *testing.T) {
	svc, store := newTestService()

	inv, err := svc.ReceiveOrRestock(context.Background(), ReceiptInput{
		ItemName:    "Defibrillator Pad",
		Quantity:    15,
		UnitMeasure: models.UnitSet,
		ConsumerID:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Defibrillator Pad", inv.Name)
	assert.Equal(t, int64(15), inv.Quantity)
	assert.Equal(t, uint(2), inv.ConsumerID)
	assert.Len(t, store.transactions, 1)
}

func TestReceiveValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ReceiveOrRestock(context.Background(), ReceiptInput{ItemName: "X", Quantity: 0, UnitMeasure: models.UnitPiece, ConsumerID: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ReceiveOrRestock(context.Background(), ReceiptInput{Quantity: 5, UnitMeasure: models.UnitPiece, ConsumerID: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation, "item_name required without item_id")

	_, err = svc.ReceiveOrRestock(context.Background(), ReceiptInput{ItemName: "X", Quantity: 5, ConsumerID: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation, "unit_measure required without item_id")

	_, err = svc.ReceiveOrRestock(context.Background(), ReceiptInput{ItemName: "X", Quantity: 5, UnitMeasure: "BARREL", ConsumerID: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
