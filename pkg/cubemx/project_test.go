package cubemx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const generatedDescriptor = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<?fileVersion 4.0.0?><cproject storage_type_id="org.eclipse.cdt.core.XmlProjectDescriptionStorage">
	<storageModule moduleId="org.eclipse.cdt.core.settings">
		<cconfiguration id="fr.ac6.managedbuild.config.gnu.cross.exe.debug.1">
			<storageModule moduleId="cdtBuildSystem" version="4.0.0">
				<configuration name="Debug" parent="fr.ac6.managedbuild.config.gnu.cross.exe.debug">
					<folderInfo id="fr.ac6.managedbuild.config.gnu.cross.exe.debug.1." name="/" resourcePath="">
						<toolChain id="fr.ac6.managedbuild.toolchain.gnu.cross.exe.debug.2" name="Ac6 STM32 MCU GCC">
							<tool id="fr.ac6.managedbuild.tool.gnu.cross.c.compiler.3" name="MCU GCC Compiler">
								<option id="gnu.c.compiler.option.preprocessor.def.symbols.4" superClass="gnu.c.compiler.option.preprocessor.def.symbols" valueType="definedSymbols">
									<listOptionValue builtIn="false" value="__weak=__attribute__((weak))"/>
									<listOptionValue builtIn="false" value="USE_HAL_DRIVER"/>
									<listOptionValue builtIn="false" value="%s"/>
								</option>
								<option id="gnu.c.compiler.option.include.paths.5" superClass="gnu.c.compiler.option.include.paths" valueType="includePath">
									<listOptionValue builtIn="false" value="../../Inc"/>
									<listOptionValue builtIn="false" value="../../Middlewares/Third_Party/FreeRTOS/Source/include"/>
									<listOptionValue builtIn="false" value="../../Drivers/CMSIS/Include"/>
								</option>
							</tool>
						</toolChain>
					</folderInfo>
				</configuration>
			</storageModule>
		</cconfiguration>
	</storageModule>
</cproject>
`

func writeFile(t *testing.T, path, content string) {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	assert.NoError(t, err)

	err = os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
}

func makeGenerated(t *testing.T, mcu string, nested bool) string {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mxproject"), "")

	desc := fmt.Sprintf(generatedDescriptor, mcu)
	if nested {
		writeFile(t, filepath.Join(dir, "SW4STM32", "firmware Configuration", ".cproject"), desc)
	} else {
		writeFile(t, filepath.Join(dir, ".cproject"), desc)
	}

	return dir
}

func TestOpenProjectMissingMarker(t *testing.T) {
	_, err := OpenProject(t.TempDir())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotCubeMXProject))
}

func TestOpenProjectMissingToolchain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mxproject"), "")

	_, err := OpenProject(dir)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotSW4STM32Project))
}

func TestOpenProjectForeignToolchain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".mxproject"), "")
	writeFile(t, filepath.Join(dir, ".cproject"), `<cproject><cconfiguration id="com.atollic.truestudio.exe.debug.1"/></cproject>`)

	_, err := OpenProject(dir)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotSW4STM32Project))
}

func TestOpenProjectRootLayout(t *testing.T) {
	dir := makeGenerated(t, "STM32F429xx", false)

	p, err := OpenProject(dir)
	assert.NoError(t, err)
	assert.Equal(t, dir, p.Location)
	assert.Equal(t, dir, p.Toolchain)
}

func TestOpenProjectNestedLayout(t *testing.T) {
	dir := makeGenerated(t, "STM32F429xx", true)

	p, err := OpenProject(dir)
	assert.NoError(t, err)
	assert.Equal(t, dir, p.Location)
	assert.Equal(t, filepath.Join(dir, "SW4STM32"), p.Toolchain)
}

func TestIncludes(t *testing.T) {
	p, err := OpenProject(makeGenerated(t, "STM32F429xx", false))
	assert.NoError(t, err)

	includes, err := p.Includes()
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"../../Inc",
		"../../Middlewares/Third_Party/FreeRTOS/Source/include",
		"../../Drivers/CMSIS/Include",
	}, includes)
}

func TestPaths(t *testing.T) {
	p := &Project{Location: "/tmp/proj"}
	target := Target{MCU: "STM32F429xx", Family: "F4"}

	assert.Equal(t, filepath.Join("/tmp/proj", "Inc"), p.IncDir())
	assert.Equal(t, filepath.Join("/tmp/proj", "Src"), p.SrcDir())
	assert.Equal(t, filepath.Join("/tmp/proj", "Drivers", "STM32F4xx_HAL_Driver", "Inc"), p.HALDriverInc(target))
	assert.Equal(t, filepath.Join("/tmp/proj", "Drivers", "STM32F4xx_HAL_Driver", "Src"), p.HALDriverSrc(target))
	assert.Equal(t, filepath.Join("/tmp/proj", "Drivers", "CMSIS", "Include"), p.CMSISInclude())
	assert.Equal(t, filepath.Join("/tmp/proj", "Drivers", "CMSIS", "Device", "ST", "STM32F4xx", "Include"), p.CMSISDeviceInclude(target))
	assert.Equal(t, filepath.Join("/tmp/proj", "Middlewares"), p.MiddlewaresDir())
}

func TestFindMiddlewares(t *testing.T) {
	dir := makeGenerated(t, "STM32F429xx", false)

	p, err := OpenProject(dir)
	assert.NoError(t, err)

	mw, err := p.FindMiddlewares()
	assert.NoError(t, err)
	assert.Equal(t, Middlewares{}, mw)

	writeFile(t, filepath.Join(dir, "Middlewares", "Third_Party", "FreeRTOS", "Source", "tasks.c"), "")
	writeFile(t, filepath.Join(dir, "Middlewares", "Third_Party", "FatFs", "src", "ff.c"), "")

	mw, err = p.FindMiddlewares()
	assert.NoError(t, err)
	assert.Equal(t, Middlewares{Present: true, FreeRTOS: true, FatFs: true}, mw)
}
